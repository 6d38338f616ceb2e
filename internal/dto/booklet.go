package dto

import "github.com/SscSPs/ledger_period_engine/internal/core/domain"

// CreateBookletRequest defines a new receipt booklet's numbering range.
type CreateBookletRequest struct {
	StartNumber int `json:"startNumber" binding:"required,min=1"`
	EndNumber   int `json:"endNumber" binding:"required,gtefield=StartNumber"`
}

// BookletResponse defines the data returned for a booklet.
type BookletResponse struct {
	BookletID      string `json:"bookletID"`
	AccountID      string `json:"accountID"`
	StartNumber    int    `json:"startNumber"`
	EndNumber      int    `json:"endNumber"`
	AvailablePages []int  `json:"availablePages"`
	IsClosed       bool   `json:"isClosed"`
}

// ToBookletResponse converts a domain.Booklet to BookletResponse DTO.
func ToBookletResponse(b *domain.Booklet) BookletResponse {
	return BookletResponse{
		BookletID:      b.BookletID,
		AccountID:      b.AccountID,
		StartNumber:    b.StartNumber,
		EndNumber:      b.EndNumber,
		AvailablePages: b.AvailablePages.Sorted(),
		IsClosed:       b.IsClosed,
	}
}
