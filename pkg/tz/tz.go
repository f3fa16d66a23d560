package tz

import "time"

// BuenosAires is the America/Argentina/Buenos_Aires location (UTC-3, no DST).
var BuenosAires *time.Location

func init() {
	var err error
	BuenosAires, err = time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		BuenosAires = time.FixedZone("ART", -3*60*60)
	}
}
