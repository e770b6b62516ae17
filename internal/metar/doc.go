// Package metar decodes individual tokens of an aviation routine weather
// report (METAR) into typed, unit-aware values and renders them back into
// localized text.
//
// # Token Families
//
// Each family owns an ordered grammar. Alternatives are tried top to bottom
// and the first match wins; a token that fits none of them is reported
// through the boolean result of the Parse function, never as an error.
//
//	Wind:        24015KT, 24015G25KT, VRB05KT, ///05KT, /////KT
//	Visibility:  9999, 1200NDV, 1 1/2SM, 3/4SM, 10SM, M1/4SM, 5KM, 2NE
//	Weather:     [+|-|VC][BC|BL|DR|FZ|MI|PR|SH|TS]<phenomenon>, e.g. +TSRA
//	Sky:         NSC, NCD, CLR, SKC, FEW030, OVC020CB, BKN100///, VV005, VV///
//	Temperature: 12, M05
//	Speed:       15, 15KT, 8MPS, 20KMH
//
// # Units
//
// Distances are stored in meters and directions in degrees. The display unit
// is chosen by an Options value passed explicitly to every parser and
// constructor; DefaultOptions returns the process-wide defaults, which callers
// build once at startup and never mutate.
//
// Unit codes for speed:
//
//	""   kilometers per hour
//	KMH  kilometers per hour
//	KT   knots
//	MPS  meters per second
//
// # Cloud Heights
//
// Cloud-base height groups are multiplied by 30: "FEW030" renders as
// "Few clouds at 900". Height groups are conventionally hundreds of feet, so
// the factor is kept as observed in existing decoded output rather than
// reinterpreted here. Vertical visibility groups are rendered as given.
//
// # Errors
//
// Configuration faults are hard failures: ErrInvalidUnit for a display unit
// outside a quantity's unit set, ErrUnknownCompassDirection for a compass
// label outside the 16 named sectors.
package metar
