// Copyright 2017-2020 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

// Package logfields defines common logging field names.
//
package logfields

const (
	// File is the name of the document being partitioned
	File = "file"

	// Offset is a byte offset in a document
	Offset = "offset"

	// Length is a length in bytes
	Length = "length"

	// Region is a region of a document whose partitioning changed
	Region = "region"

	// Restart is the offset where a rescan started
	Restart = "restart"

	// Rescanned is the number of partitions produced by a rescan
	Rescanned = "rescanned"

	// Partitions is the number of partitions of a document
	Partitions = "partitions"

	// Type is a partition type
	Type = "type"

	// Event is a file system event
	Event = "event"

	// Config is the path of a configuration file
	Config = "config"
)
