package model

import "slices"

const (
	DevicePhone   = "phone"
	DeviceTablet  = "tablet"
	DeviceLaptop  = "laptop"
	DeviceDesktop = "desktop"
	DeviceTV      = "tv"
	DeviceOther   = "other"
)

const (
	CategorySocial        = "social"
	CategoryEntertainment = "entertainment"
	CategoryProductivity  = "productivity"
	CategoryEducation     = "education"
	CategoryGaming        = "gaming"
	CategoryCommunication = "communication"
	CategoryNews          = "news"
	CategoryOther         = "other"
)

// DateLayout is the calendar date format used for TimeEntry.Date.
const DateLayout = "2006-01-02"

var Devices = []string{
	DevicePhone,
	DeviceTablet,
	DeviceLaptop,
	DeviceDesktop,
	DeviceTV,
	DeviceOther,
}

var Categories = []string{
	CategorySocial,
	CategoryEntertainment,
	CategoryProductivity,
	CategoryEducation,
	CategoryGaming,
	CategoryCommunication,
	CategoryNews,
	CategoryOther,
}

// TimeEntry is one logged usage record. Duration is in minutes.
type TimeEntry struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Device   string `json:"device"`
	App      string `json:"app"`
	Category string `json:"category"`
	Duration int    `json:"duration"`
	Notes    string `json:"notes,omitempty"`
}

// SameFields reports whether two entries are equal ignoring their IDs.
func (e TimeEntry) SameFields(other TimeEntry) bool {
	e.ID = ""
	other.ID = ""
	return e == other
}

func IsDevice(v string) bool {
	return slices.Contains(Devices, v)
}

func IsCategory(v string) bool {
	return slices.Contains(Categories, v)
}
