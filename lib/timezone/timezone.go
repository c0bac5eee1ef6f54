package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		panic(err)
	}
}

// force timezone to be IST because the Vahan portal reports dates in
// local Indian time, servers deployed elsewhere would otherwise shift
// day and quarter boundaries when manipulating dates based on
// <time.Time>.Year()/Month()/Day()/Hour()/...
func Now() time.Time {
	return time.Now().In(Location)
}

// Date builds a midnight timestamp in IST.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, Location)
}
