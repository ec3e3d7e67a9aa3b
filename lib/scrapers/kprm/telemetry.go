package kprm

import (
	"horizon-monitoring/lib/restyutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/kprm")
var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput must be called before NewFetcher to take
// effect.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
