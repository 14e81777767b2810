// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jevent implements an incremental event-driven parser for JSON.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON. Construct a scanner
// from an io.Reader and call its Next method to iterate over the tokens of
// the input:
//
//	s := jevent.NewScanner(input)
//	for {
//	   tok, err := s.Next()
//	   if err == io.EOF {
//	      break
//	   } else if err != nil {
//	      log.Fatalf("Scanning failed: %v", err)
//	   }
//	   log.Printf("Next token: %v", tok)
//	}
//
// Lexical errors have concrete type *jevent.TokenizationError, and include a
// preview of the source line with a caret marking the offending column.
//
// # Parsing
//
// The Parser type consumes tokens and delivers one Event per call of its Next
// method to each registered Observer. The caller decides when to take the next
// step, and may stop at any time:
//
//	p := jevent.NewParser(input)
//	p.Register(jevent.ObserverFunc(func(e jevent.Event) error {
//	   log.Printf("Event: %v", e)
//	   return nil
//	}))
//	for {
//	   ok, err := p.Next()
//	   if err != nil {
//	      log.Fatalf("Parse failed: %v", err)
//	   } else if !ok {
//	      break // end of input
//	   }
//	}
//
// ParseAll runs the same loop to completion. Commas are consumed as part of
// the step that follows them and produce no event.
//
// # Events
//
// The events correspond to the syntax of JSON values:
//
//	JSON type  | Events                    | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | ObjectStart, ObjectEnd    | { ... }
//	member     | ObjectKey                 | "key": (followed by its value)
//	array      | ArrayStart, ArrayEnd      | [ ... ]
//	value      | StringValue, IntegerValue | "text", 1
//	           | FloatValue, BoolValue     | 2.5, true, false
//	           | NullValue                 | null
//
// Events arrive depth-first in source order. The parser tracks the grammar
// with a Stack of frames, and reports a *GrammarError for any token the
// grammar does not permit at that point, naming the classes it expected.
// Only one value is permitted at the top level.
//
// # Strings
//
// By default the text of keys and string values is delivered exactly as it
// appears between the quotes, and the first quote after the opening quote
// ends the string. Call DecodeEscapes to decode standard JSON escape
// sequences instead.
package jevent
