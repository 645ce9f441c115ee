// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package macho

import "github.com/google/uuid"

// UUIDCommandSize is the size in bytes of an LC_UUID load command.
const UUIDCommandSize = loadCommandFixedSize + 16

// FindUUID advances s until it finds an LC_UUID command
// and returns the identifier stored in it.
// found is false if the commands were exhausted without an LC_UUID,
// which is not an error.
// Any other commands are skipped using their declared size.
func FindUUID(s *CommandScanner) (_ uuid.UUID, found bool, err error) {
	for s.Next() {
		if s.Command() != LoadCmdUUID {
			continue
		}
		var buf [UUIDCommandSize]byte
		if err := s.ReadCommand(buf[:]); err != nil {
			return uuid.Nil, false, err
		}
		// The identifier is a byte string,
		// so it reads the same regardless of the file's byte order.
		id, err := uuid.FromBytes(buf[loadCommandFixedSize:])
		if err != nil {
			return uuid.Nil, false, err
		}
		return id, true, nil
	}
	return uuid.Nil, false, s.Err()
}
