package models

import (
	"strings"

	"github.com/c14220110/poliklinik-dashboard/pkg/utils"
)

// Vitals is the loosely structured screening sub-record. Values may be
// strings, numbers or null depending on which form recorded them.
type Vitals map[string]interface{}

type VitalsStatus string

const (
	VitalsRecorded VitalsStatus = "Recorded"
	VitalsPending  VitalsStatus = "Pending"
)

// VitalField is one canonical measurement and the keys it has been stored under,
// most preferred first.
type VitalField struct {
	Name    string
	Aliases []string
}

// CanonicalVitals decide completeness. Random blood sugar (rbs) is captured by
// the screening form but is not a completeness field.
var CanonicalVitals = []VitalField{
	{Name: "blood_pressure", Aliases: []string{"bp", "blood_pressure", "bloodPressure"}},
	{Name: "weight", Aliases: []string{"weight", "weight_kg"}},
	{Name: "pulse", Aliases: []string{"pulse", "pulse_rate", "pulseRate"}},
	{Name: "oxygen_saturation", Aliases: []string{"spo2", "oxygen_saturation", "oxygenSaturation"}},
	{Name: "temperature", Aliases: []string{"temperature", "temp"}},
	{Name: "respiratory_rate", Aliases: []string{"respiratory_rate", "respiratoryRate", "rr"}},
	{Name: "height", Aliases: []string{"height", "height_cm"}},
}

// Field returns the first populated alias of f.
func (v Vitals) Field(f VitalField) (interface{}, bool) {
	accessors := make([]utils.Accessor[interface{}], 0, len(f.Aliases))
	for _, key := range f.Aliases {
		key := key
		accessors = append(accessors, func() (interface{}, bool) {
			val, ok := v[key]
			return val, ok && populated(val)
		})
	}
	val := utils.FirstOf[interface{}](nil, accessors...)
	return val, val != nil
}

// Status is Recorded iff at least one canonical field is populated.
// A nil or empty map is Pending.
func (v Vitals) Status() VitalsStatus {
	for _, f := range CanonicalVitals {
		if _, ok := v.Field(f); ok {
			return VitalsRecorded
		}
	}
	return VitalsPending
}

func populated(val interface{}) bool {
	switch x := val.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(x) != ""
	}
	return true
}
