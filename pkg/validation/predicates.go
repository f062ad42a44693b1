package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Canonical check names understood by the default Registry.
const (
	CheckRequired     = "required"
	CheckMaxLength    = "maxLength"
	CheckIsNumber     = "isNumber"
	CheckValidateDate = "validateDate"
	CheckCalendarDate = "calendarDate"
	CheckMinLength    = "minLength"
	CheckMin          = "min"
	CheckMax          = "max"
	CheckPattern      = "pattern"
	CheckOneOf        = "oneOf"
)

// DatePattern is the DD-MM-YYYY shape accepted by ValidateDate.
const DatePattern = `^\d{2}-\d{2}-\d{4}$`

// DateLayout is the time layout matching DatePattern.
const DateLayout = "02-01-2006"

var dateRe = regexp.MustCompile(DatePattern)

// Required passes when value is present: not nil and not the empty string.
// Zero numbers and false are present.
func Required(value any, _ ...any) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case string:
		return typed != ""
	default:
		return true
	}
}

// MaxLength passes when the string value holds at most args[0] characters.
// Length counts runes. Applying it to anything but a string violates the
// check's contract and panics with a *ContractError.
func MaxLength(value any, args ...any) bool {
	limit := lengthArg(CheckMaxLength, args)
	return stringLength(CheckMaxLength, value) <= limit
}

// MinLength passes when the string value holds at least args[0] characters.
// Same contract as MaxLength.
func MinLength(value any, args ...any) bool {
	limit := lengthArg(CheckMinLength, args)
	return stringLength(CheckMinLength, value) >= limit
}

// IsNumber passes when value is a finite number, or a string that parses as
// one. NaN and infinities ("Inf", "Infinity") fail, as do the empty string,
// nil and booleans.
func IsNumber(value any, _ ...any) bool {
	number, ok := toFloat(value)
	return ok && !math.IsNaN(number) && !math.IsInf(number, 0)
}

// ValidateDate passes when value is a string shaped like DD-MM-YYYY. The
// check is syntactic only: "31-02-2024" passes. Use CalendarDate for a check
// that also rejects impossible dates.
func ValidateDate(value any, _ ...any) bool {
	s, ok := value.(string)
	return ok && dateRe.MatchString(s)
}

// CalendarDate passes when value is a DD-MM-YYYY string naming a real
// calendar day.
func CalendarDate(value any, _ ...any) bool {
	if !ValidateDate(value) {
		return false
	}
	_, err := time.Parse(DateLayout, value.(string))
	return err == nil
}

// Min passes when value is numeric and >= args[0]. Non-numeric values fail.
func Min(value any, args ...any) bool {
	bound := boundArg(CheckMin, args)
	number, ok := toFloat(value)
	return ok && !math.IsNaN(number) && number >= bound
}

// Max passes when value is numeric and <= args[0]. Non-numeric values fail.
func Max(value any, args ...any) bool {
	bound := boundArg(CheckMax, args)
	number, ok := toFloat(value)
	return ok && !math.IsNaN(number) && number <= bound
}

// Pattern passes when value is a string matching args[0], given either as a
// *regexp.Regexp or as an expression string. Non-string values fail.
func Pattern(value any, args ...any) bool {
	if len(args) == 0 {
		contractViolation(CheckPattern, value, "missing pattern argument")
	}
	var re *regexp.Regexp
	switch typed := args[0].(type) {
	case *regexp.Regexp:
		re = typed
	case string:
		compiled, err := regexp.Compile(typed)
		if err != nil {
			contractViolation(CheckPattern, typed, "invalid pattern: "+err.Error())
		}
		re = compiled
	default:
		contractViolation(CheckPattern, args[0], "pattern argument must be a string or *regexp.Regexp")
	}
	s, ok := value.(string)
	return ok && re.MatchString(s)
}

// OneOf passes when value equals one of args, comparing their printed forms
// so "10" matches 10. Nil never matches.
func OneOf(value any, args ...any) bool {
	if value == nil {
		return false
	}
	printed := fmt.Sprint(value)
	for _, option := range args {
		if option == nil {
			continue
		}
		if fmt.Sprint(option) == printed {
			return true
		}
	}
	return false
}

func stringLength(check string, value any) int {
	s, ok := value.(string)
	if !ok {
		contractViolation(check, value, "value must be a string")
	}
	return utf8.RuneCountInString(s)
}

func lengthArg(check string, args []any) int {
	if len(args) == 0 {
		contractViolation(check, nil, "missing length argument")
	}
	n, ok := toInt(args[0])
	if !ok || n < 0 {
		contractViolation(check, args[0], "length argument must be a non-negative integer")
	}
	return n
}

func boundArg(check string, args []any) float64 {
	if len(args) == 0 {
		contractViolation(check, nil, "missing bound argument")
	}
	bound, ok := toFloat(args[0])
	if !ok || math.IsNaN(bound) {
		contractViolation(check, args[0], "bound argument must be numeric")
	}
	return bound
}

func toFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case nil, bool:
		return 0, false
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return 0, false
		}
		number, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return number, true
	case json.Number:
		number, err := typed.Float64()
		return number, err == nil
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int8:
		return float64(typed), true
	case int16:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case uint:
		return float64(typed), true
	case uint8:
		return float64(typed), true
	case uint16:
		return float64(typed), true
	case uint32:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	default:
		return 0, false
	}
}

func toInt(value any) (int, bool) {
	switch typed := value.(type) {
	case int:
		return typed, true
	case int64:
		return int(typed), true
	case int32:
		return int(typed), true
	case uint:
		return int(typed), true
	case uint64:
		return int(typed), true
	case uint32:
		return int(typed), true
	}
	number, ok := toFloat(value)
	if !ok || math.IsNaN(number) || math.IsInf(number, 0) || number != math.Trunc(number) {
		return 0, false
	}
	return int(number), true
}
