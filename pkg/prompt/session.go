package prompt

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formcheck/pkg/validation"
)

const defaultMaxAttempts = 3

// Option customises a Session.
type Option func(*Session)

// WithDriver replaces the survey driver.
func WithDriver(driver Driver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithInitialValues pre-fills prompts with values, for example when fixing a
// snapshot that failed validation.
func WithInitialValues(values validation.Values) Option {
	return func(s *Session) {
		s.initial = values
	}
}

// WithMaxAttempts bounds how many correction rounds Fill runs after the
// first pass.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}

// Session collects a form snapshot interactively, validating each answer as
// it is typed and the whole snapshot at the end.
type Session struct {
	driver      Driver
	initial     validation.Values
	maxAttempts int
}

// New builds a session. Without WithDriver the session prompts on the
// terminal through survey.
func New(opts ...Option) *Session {
	s := &Session{maxAttempts: defaultMaxAttempts}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Fill prompts for every rule and returns the snapshot together with the
// errors that remain after the correction rounds. A non-nil error means the
// session could not complete (abort, driver failure or malformed rules).
func (s *Session) Fill(ctx context.Context, rules []validation.Rule) (validation.Values, validation.ErrorMap, error) {
	if s == nil || s.driver == nil {
		return nil, nil, ErrNoDriver
	}

	values := make(validation.Values, len(rules))
	for _, rule := range rules {
		var err error
		if rule.IsRows() {
			values[rule.Field], err = s.fillRows(ctx, rule)
		} else {
			values[rule.Field], err = s.ask(ctx, rule.Field, rule.Checks, initialString(s.initial[rule.Field]))
		}
		if err != nil {
			return nil, nil, err
		}
	}

	errs, err := validation.ValidateFormSafe(values, rules)
	if err != nil {
		return values, nil, err
	}

	for attempt := 0; attempt < s.maxAttempts && !errs.Empty(); attempt++ {
		if err := s.driver.Info(ctx, fmt.Sprintf("%d field(s) need attention", len(errs))); err != nil {
			return nil, nil, err
		}
		for _, raw := range errs.Keys() {
			if err := s.correct(ctx, values, rules, raw, errs[raw]); err != nil {
				return nil, nil, err
			}
		}
		errs, err = validation.ValidateFormSafe(values, rules)
		if err != nil {
			return values, nil, err
		}
	}
	return values, errs, nil
}

func (s *Session) fillRows(ctx context.Context, rule validation.Rule) ([]any, error) {
	keys := make([]string, 0, len(rule.RowChecks))
	for key := range rule.RowChecks {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	initialRows, _ := validation.Rows(s.initial[rule.Field])
	rows := make([]any, 0, len(initialRows))

	for i := 0; ; i++ {
		more, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add row %d to %s?", i+1, rule.Field),
			Default: i < len(initialRows) || i == 0,
		})
		if err != nil {
			return nil, err
		}
		if !more {
			return rows, nil
		}

		var seed validation.Row
		if i < len(initialRows) {
			seed = initialRows[i]
		}
		row := make(map[string]any, len(keys))
		for _, key := range keys {
			value, err := s.ask(ctx, validation.RowKey(rule.Field, i, key), rule.RowChecks[key], initialString(seed[key]))
			if err != nil {
				return nil, err
			}
			row[key] = value
		}
		rows = append(rows, row)
	}
}

func (s *Session) correct(ctx context.Context, values validation.Values, rules []validation.Rule, raw, message string) error {
	key := validation.ParseKey(raw)
	rule, ok := findRule(rules, key.Field)
	if !ok {
		return nil
	}
	if err := s.driver.Info(ctx, raw+": "+message); err != nil {
		return err
	}

	if !key.IsRow {
		answer, err := s.ask(ctx, raw, rule.Checks, initialString(values[key.Field]))
		if err != nil {
			return err
		}
		values[key.Field] = answer
		return nil
	}

	rows, _ := values[key.Field].([]any)
	if key.Row >= len(rows) {
		return nil
	}
	row, ok := rows[key.Row].(map[string]any)
	if !ok {
		return nil
	}
	answer, err := s.ask(ctx, raw, rule.RowChecks[key.RowField], initialString(row[key.RowField]))
	if err != nil {
		return err
	}
	row[key.RowField] = answer
	return nil
}

// ask prompts for one value. Checks offering a fixed set of options (oneOf)
// become a select prompt; everything else is free text validated live.
func (s *Session) ask(ctx context.Context, label string, checks []validation.Check, initial string) (any, error) {
	if options := choiceOptions(checks); len(options) > 0 {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: indexOf(options, initial),
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(options) {
			return "", nil
		}
		return options[idx], nil
	}

	answer, err := s.driver.Input(ctx, InputConfig{
		Message:   label,
		Default:   initial,
		Validator: liveValidator(checks),
	})
	if err != nil {
		return nil, err
	}
	return answer, nil
}

func liveValidator(checks []validation.Check) func(string) error {
	if len(checks) == 0 {
		return nil
	}
	return func(answer string) (err error) {
		defer func() {
			if recovered := recover(); recovered != nil {
				err = fmt.Errorf("%v", recovered)
			}
		}()
		if message, failed := validation.ValidateField(answer, checks); failed {
			return errors.New(message)
		}
		return nil
	}
}

func choiceOptions(checks []validation.Check) []string {
	for _, check := range checks {
		if check.Name != validation.CheckOneOf || len(check.Args) == 0 {
			continue
		}
		options := make([]string, 0, len(check.Args))
		for _, arg := range check.Args {
			if arg != nil {
				options = append(options, fmt.Sprint(arg))
			}
		}
		return options
	}
	return nil
}

func findRule(rules []validation.Rule, field string) (validation.Rule, bool) {
	for _, rule := range rules {
		if rule.Field == field {
			return rule, true
		}
	}
	return validation.Rule{}, false
}

func initialString(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return strings.TrimSpace(fmt.Sprint(value))
}
