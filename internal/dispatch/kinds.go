package dispatch

import "github.com/ppiankov/slotparse/internal/slot"

// Single-kind shortcuts

func (d *Dispatcher) ParseNumber(query string) ([]slot.Value, error) {
	return d.Parse(query, "number")
}

func (d *Dispatcher) ParseOrdinal(query string) ([]slot.Value, error) {
	return d.Parse(query, "ordinal")
}

func (d *Dispatcher) ParsePercentage(query string) ([]slot.Value, error) {
	return d.Parse(query, "percentage")
}

func (d *Dispatcher) ParseDuration(query string) ([]slot.Value, error) {
	return d.Parse(query, "duration")
}

func (d *Dispatcher) ParseAmountOfMoney(query string) ([]slot.Value, error) {
	return d.Parse(query, "amount-of-money")
}

func (d *Dispatcher) ParseTemperature(query string) ([]slot.Value, error) {
	return d.Parse(query, "temperature")
}

func (d *Dispatcher) ParseDatetime(query string) ([]slot.Value, error) {
	return d.Parse(query, "datetime")
}

func (d *Dispatcher) ParseDatetimeInterval(query string) ([]slot.Value, error) {
	return d.Parse(query, "datetime-interval")
}

// ParseDate returns datetimes of day grain or coarser
func (d *Dispatcher) ParseDate(query string) ([]slot.Value, error) {
	return d.Parse(query, "date")
}

// ParseTime returns datetimes finer than a day
func (d *Dispatcher) ParseTime(query string) ([]slot.Value, error) {
	return d.Parse(query, "time")
}

func (d *Dispatcher) ParseDatePeriod(query string) ([]slot.Value, error) {
	return d.Parse(query, "date-period")
}

func (d *Dispatcher) ParseTimePeriod(query string) ([]slot.Value, error) {
	return d.Parse(query, "time-period")
}
