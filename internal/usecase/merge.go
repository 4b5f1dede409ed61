package usecase

import (
	"time"

	"github.com/iho/agencyledger/internal/domain"
)

func setIfPresent[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func mergeHeader(head *domain.PostingHeader, date *time.Time, note *string) {
	setIfPresent(&head.Date, date)
	setIfPresent(&head.Note, note)
}
