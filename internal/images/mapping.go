package images

import (
	"github.com/JaimeStill/doc-archive/pkg/query"
	"github.com/JaimeStill/doc-archive/pkg/repository"
)

var projection = query.NewProjectionMap("", "images", "i").
	Project("id", "ID").
	Project("document_id", "DocumentID").
	Project("path", "Path").
	Project("original_filename", "OriginalFilename").
	Project("page_number", "PageNumber").
	Project("sequence", "Sequence").
	Project("sides", "Sides").
	Project("notes", "Notes").
	Project("created_at", "CreatedAt")

var pageOrder = query.SortField{Field: "PageNumber"}

func scanImage(s repository.Scanner) (Image, error) {
	var img Image
	err := s.Scan(
		&img.ID,
		&img.DocumentID,
		&img.Path,
		&img.OriginalFilename,
		&img.PageNumber,
		&img.Sequence,
		&img.Sides,
		&img.Notes,
		&img.CreatedAt,
	)
	return img, err
}
