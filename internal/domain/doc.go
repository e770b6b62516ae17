// Package domain turns whole METAR/SPECI report bodies into localized
// decoded reports. The per-group grammar lives in package metar; this
// package splits a report into groups, routes them and assembles the result.
//
// # Report Layout
//
// A report body is a whitespace-separated sequence of groups:
//
//	METAR KJFK 121651Z AUTO 27015G25KT 1 1/2SM -RA BR BKN008 OVC015 12/M05 A2992 RMK AO2
//
//	METAR, SPECI      report type, skipped
//	KJFK              ICAO location indicator (first position, 4 alphanumerics)
//	121651Z           issue time DDHHMMZ, kept verbatim
//	COR, AUTO         status markers, skipped
//	RMK               start of remarks; nothing after it is decoded
//
// A trailing "=" end-of-message marker is stripped. Visibility written as
// whole miles plus a fraction arrives as two groups ("1", "1/2SM") and is
// re-joined before parsing.
//
// # Dispatch
//
// Each remaining group is offered to the parsers in a fixed order: wind,
// visibility, weather, sky condition, temperature pair. The first match
// wins. "TT/DD" yields two decoded tokens (temperature and dew point); a
// missing half renders as not available. Groups no parser recognizes, such
// as altimeter settings, are kept in Unparsed.
//
// # ID Generation
//
// Report IDs are deterministic SHA-256 prefixes of station|body, prefixed
// by the lower-cased station. Replaying the same report produces the same
// ID, so downstream consumers can upsert idempotently. See [generateID].
package domain
