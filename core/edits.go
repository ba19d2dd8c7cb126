package core

import (
	"time"

	"pkt.systems/codetribe/schema"
)

// Edit describes one mutation of the shared document. Nil fields leave
// the corresponding document field untouched.
type Edit struct {
	Code      *string
	Language  *schema.LanguageID
	UpdatedBy schema.UserID
	At        time.Time
}

// EditApplier folds an edit into the shared document. The default
// applier replaces fields wholesale (last writer wins); a merging
// implementation can be swapped in through ServiceDeps without
// touching callers.
type EditApplier interface {
	ApplyEdit(doc schema.DocumentSnapshot, edit Edit) schema.DocumentSnapshot
}

type lastWriteWins struct{}

func (lastWriteWins) ApplyEdit(doc schema.DocumentSnapshot, edit Edit) schema.DocumentSnapshot {
	if edit.Code != nil {
		doc.Code = *edit.Code
	}
	if edit.Language != nil {
		doc.Language = *edit.Language
	}
	doc.UpdatedBy = edit.UpdatedBy
	doc.UpdatedAt = edit.At
	return doc
}
