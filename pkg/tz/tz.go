package tz

import "time"

// Lagos is the Africa/Lagos location (WAT, no DST), the default
// timezone for report scheduling.
var Lagos *time.Location

func init() {
	var err error
	Lagos, err = time.LoadLocation("Africa/Lagos")
	if err != nil {
		panic("tz: load Africa/Lagos: " + err.Error())
	}
}
