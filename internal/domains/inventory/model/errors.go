package model

import "errors"

var (
	ErrStockNotFound     = errors.New("no stock record for SKU")
	ErrInvalidImportFile = errors.New("import file could not be parsed")
	ErrMissingColumn     = errors.New("import file is missing a required column")
	ErrEmptyImportFile   = errors.New("import file has no data rows")
)
