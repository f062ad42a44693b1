package validation

// NewCheck builds a check from an arbitrary predicate.
func NewCheck(name string, method Predicate, message string, args ...any) Check {
	return Check{
		Name:    name,
		Method:  method,
		Message: message,
		Args:    args,
	}
}

func RequiredCheck(message string) Check {
	return NewCheck(CheckRequired, Required, message)
}

func MaxLengthCheck(limit int, message string) Check {
	return NewCheck(CheckMaxLength, MaxLength, message, limit)
}

func MinLengthCheck(limit int, message string) Check {
	return NewCheck(CheckMinLength, MinLength, message, limit)
}

func NumberCheck(message string) Check {
	return NewCheck(CheckIsNumber, IsNumber, message)
}

func DateCheck(message string) Check {
	return NewCheck(CheckValidateDate, ValidateDate, message)
}

// CalendarDateCheck is the strict counterpart of DateCheck.
func CalendarDateCheck(message string) Check {
	return NewCheck(CheckCalendarDate, CalendarDate, message)
}

func MinCheck(bound float64, message string) Check {
	return NewCheck(CheckMin, Min, message, bound)
}

func MaxCheck(bound float64, message string) Check {
	return NewCheck(CheckMax, Max, message, bound)
}

// WithMessageKey returns a copy of c carrying a translation key.
func (c Check) WithMessageKey(key string) Check {
	c.MessageKey = key
	return c
}

// Optional returns a copy of c that passes whenever the value is absent, so
// shape checks such as maxLength can guard fields a form may omit.
func (c Check) Optional() Check {
	c.Method = SkipAbsent(c.Method)
	return c
}

// SkipAbsent wraps p so absent values (see Required) pass without calling p.
func SkipAbsent(p Predicate) Predicate {
	if p == nil {
		return nil
	}
	return func(value any, args ...any) bool {
		if !Required(value) {
			return true
		}
		return p(value, args...)
	}
}
