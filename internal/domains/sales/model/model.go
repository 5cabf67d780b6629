package model

import "time"

// ChannelSales is the per-SKU sales history over a look-back window,
// split between the FBA channel and every other channel.
type ChannelSales struct {
	SKU        string `json:"sku"`
	FBAUnits   int    `json:"fba_units"`
	OtherUnits int    `json:"other_units"`
	TotalUnits int    `json:"total_units"`
}

// DailySale is one dated quantity in a velocity history.
type DailySale struct {
	Date     time.Time `json:"date"`
	Quantity int       `json:"quantity"`
}

// VelocityRecord is the per-SKU sales velocity derived from a look-back
// window of order data.
type VelocityRecord struct {
	SKU               string      `json:"sku"`
	AverageDailySales float64     `json:"average_daily_sales"`
	History           []DailySale `json:"history,omitempty"`
}
