package sejm

import (
	"horizon-monitoring/lib/restyutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/sejm")
var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput must be called before NewClient to take
// effect.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
