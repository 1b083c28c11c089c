// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package link

import (
	"errors"
	"fmt"
	"strings"

	nmea "github.com/adrianmo/go-nmea"
)

// A serial radio is a byte stream, so each datagram is framed as an
// NMEA-0183 style sentence:
//
//	$RCJOY,<payload>*<checksum>\r\n
//
// The checksum lets the receiver discard lines mangled on air; a discarded
// line is just a lost datagram.
const (
	sentenceTalker = "RC"
	sentenceType   = "JOY"
)

// joySentence is one framed datagram.
type joySentence struct {
	nmea.BaseSentence
	Payload string
}

var sentenceParser = nmea.SentenceParser{
	CustomParsers: map[string]nmea.ParserFunc{
		sentenceType: parseJoySentence,
	},
}

func parseJoySentence(s nmea.BaseSentence) (nmea.Sentence, error) {
	if s.Talker != sentenceTalker {
		return nil, fmt.Errorf("unexpected talker %q", s.Talker)
	}
	if len(s.Fields) != 1 {
		return nil, fmt.Errorf("expected 1 field, got %d", len(s.Fields))
	}
	return joySentence{BaseSentence: s, Payload: s.Fields[0]}, nil
}

// encodeSentence frames payload for the serial link. Payloads containing
// NMEA delimiters cannot be framed.
func encodeSentence(payload []byte) (string, error) {
	if strings.ContainsAny(string(payload), "$!*,\r\n") {
		return "", fmt.Errorf("payload %q contains a sentence delimiter", payload)
	}
	body := sentenceTalker + sentenceType + "," + string(payload)
	return "$" + body + "*" + nmea.Checksum(body) + "\r\n", nil
}

// decodeSentence validates one line and returns its payload.
func decodeSentence(line string) ([]byte, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, errors.New("empty line")
	}

	s, err := sentenceParser.Parse(line)
	if err != nil {
		return nil, err
	}
	js, ok := s.(joySentence)
	if !ok {
		return nil, fmt.Errorf("unexpected sentence type %s", s.DataType())
	}
	return []byte(js.Payload), nil
}
