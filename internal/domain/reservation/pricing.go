package reservation

import "stayhub/internal/domain/property"

// Quote prices a stay against the property's rate card. Stays of seven
// nights or more use the weekly tier when one is published: full weeks at
// the weekly rate, remaining nights at the daily rate. The result is
// frozen on the reservation at request time; later rate changes never
// reprice an existing reservation.
func Quote(rates property.RateCard, period StayPeriod) Money {
	nights := int64(period.Nights())
	if rates.WeeklyCents != nil && nights >= 7 {
		weeks := nights / 7
		rem := nights % 7
		return NewMoney(weeks*(*rates.WeeklyCents) + rem*rates.DailyCents)
	}
	return NewMoney(nights * rates.DailyCents)
}
