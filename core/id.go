package core

import (
	"crypto/rand"
	"encoding/hex"

	"pkt.systems/scriptdialogue/schema"
)

func newDialogueID() schema.DialogueID {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "dialogue-unknown"
	}
	return schema.DialogueID(hex.EncodeToString(buf[:]))
}
