/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package compressor

import (
	"fmt"
	"time"
)

// Event types fired while Config.Verbose is set and Config.Listener is
// non-nil.
const (
	EvtCompressionStart   = 0
	EvtCompressionEnd     = 1
	EvtDecompressionStart = 2
	EvtDecompressionEnd   = 3
	EvtBlockInfo          = 4 // Hybrid: a block was classified and routed
)

// Event is a single progress notification. It never carries an error;
// failures are always returned through Result.Err.
type Event struct {
	Type      int
	Message   string
	Size      int64
	EventTime time.Time
}

// NewEvent creates an Event, defaulting EventTime to now.
func NewEvent(evtType int, msg string, size int64) *Event {
	return &Event{Type: evtType, Message: msg, Size: size, EventTime: time.Now()}
}

// String renders the event the way a verbose CLI run would print it.
func (this *Event) String() string {
	label := ""

	switch this.Type {
	case EvtCompressionStart:
		label = "COMPRESSION_START"
	case EvtCompressionEnd:
		label = "COMPRESSION_END"
	case EvtDecompressionStart:
		label = "DECOMPRESSION_START"
	case EvtDecompressionEnd:
		label = "DECOMPRESSION_END"
	case EvtBlockInfo:
		label = "BLOCK_INFO"
	}

	return fmt.Sprintf("[%s] %s (size=%d)", label, this.Message, this.Size)
}

// Listener is implemented by anything that wants to observe codec
// progress. ProcessEvent must not block or retain evt beyond the call.
type Listener interface {
	ProcessEvent(evt *Event)
}

// Notify is a small helper codecs use to fire an event only when verbose
// reporting is enabled and a listener is wired up.
func Notify(cfg Config, evtType int, msg string, size int64) {
	if !cfg.Verbose || cfg.Listener == nil {
		return
	}

	cfg.Listener.ProcessEvent(NewEvent(evtType, msg, size))
}
