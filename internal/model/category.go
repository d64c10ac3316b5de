package model

type CategoryID string

// Category is one row of the classification table. A "main-only" row, a
// "main+sub" row, and a "main+sub+detail" row are three distinct records
// that together describe one tree path; there is no parent pointer.
type Category struct {
	ID             CategoryID `json:"id"`
	MainCategory   string     `json:"mainCategory"`
	SubCategory    string     `json:"subCategory"`
	DetailCategory string     `json:"detailCategory"`
}
