package domain

// Column names as they appear in the exported missing-missort sheet
// (after header trimming).
const (
	ColTrackingID = "Tracking ID"
	ColDSPName    = "DSP Name"
	ColDAName     = "DA Name"
	ColRoute      = "Route"
	ColCost       = "Cost"
)

// RequiredColumns must be present for any report to be built.
var RequiredColumns = []string{ColTrackingID, ColDSPName, ColDAName, ColRoute}

// Carrier labels that are not contracted DSPs.
const (
	CarrierFlex = "FLEX"
	CarrierSnow = "SNOW Platform"
)
