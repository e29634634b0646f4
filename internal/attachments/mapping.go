package attachments

import (
	"github.com/JaimeStill/doc-archive/pkg/query"
	"github.com/JaimeStill/doc-archive/pkg/repository"
)

var projection = query.NewProjectionMap("", "attachments", "a").
	Project("id", "ID").
	Project("document_id", "DocumentID").
	Project("image_id", "ImageID").
	Project("number", "Number").
	Project("date", "Date").
	Project("title", "Title").
	Project("department", "Department").
	Project("classification", "Classification").
	Project("notes", "Notes").
	Project("raw_notes", "RawNotes").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{Field: "CreatedAt"}

func scanAttachment(s repository.Scanner) (Attachment, error) {
	var a Attachment
	err := s.Scan(
		&a.ID,
		&a.DocumentID,
		&a.ImageID,
		&a.Number,
		&a.Date,
		&a.Title,
		&a.Department,
		&a.Classification,
		&a.Notes,
		&a.RawNotes,
		&a.CreatedAt,
	)
	return a, err
}
