// Package compose turns a user-entered event into the canonical JSON record
// and a suggested file name. Nothing produced here is merged into the loaded
// events.
package compose

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/twdsco/hackertracker/internal/dateutil"
	"github.com/twdsco/hackertracker/internal/event"
)

// Validation errors.
var (
	ErrMissingTitle       = errors.New("title cannot be empty")
	ErrMissingDate        = errors.New("start and end dates are required")
	ErrInvalidDate        = errors.New("date must be YYYY-MM-DD and time HH:MM")
	ErrTimePairing        = errors.New("start and end times must both be set or both be empty")
	ErrMissingAudienceTag = errors.New("at least one audience tag is required")
	ErrEndBeforeStart     = errors.New("end must not be before start")
	ErrInvalidStatus      = errors.New("status must be confirmed or tentative")
	ErrNoOutput           = errors.New("no JSON generated yet")
)

var messages = map[error]string{
	ErrMissingTitle:       "請輸入活動名稱。",
	ErrMissingDate:        "請輸入開始與結束日期。",
	ErrInvalidDate:        "日期或時間格式錯誤。",
	ErrTimePairing:        "開始時間與結束時間需同時填寫或同時留空。",
	ErrMissingAudienceTag: "請至少選擇「實體」或「線上」其中一個標籤。",
	ErrEndBeforeStart:     "結束時間必須晚於開始時間！",
	ErrInvalidStatus:      "狀態必須為 confirmed 或 tentative。",
	ErrNoOutput:           "尚未產生 JSON，請先送出表單。",
}

// Hint is shown next to the tag choices.
const Hint = "請至少選擇「實體」或「線上」。"

// Message returns the user-facing text for a compose error.
func Message(err error) string {
	for target, msg := range messages {
		if errors.Is(err, target) {
			return msg
		}
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// Defaults.
const (
	DefaultOffset         = "+08:00"
	DefaultOnlineLocation = "線上活動"
	DefaultFileName       = "event"
	MaxSlugLength         = 40
)

// Draft is the candidate event as entered.
type Draft struct {
	Title     string
	StartDate string
	StartTime string
	EndDate   string
	EndTime   string
	Location  string
	Organizer string
	Contact   string
	URL       string
	Status    string
	Tags      []string
	// Online replaces the location with the online placeholder.
	Online bool
}

// Output is a validated, serialized candidate.
type Output struct {
	Record   event.Raw
	JSON     string
	FileName string
}

// Composer validates and serializes drafts.
type Composer struct {
	vocab          event.Vocabulary
	audience       []string
	offset         string
	loc            *time.Location
	onlineLocation string
}

// Option configures a Composer.
type Option func(*Composer)

// WithAudience sets the tags of which at least one is required.
func WithAudience(tags []string) Option {
	return func(c *Composer) { c.audience = tags }
}

// WithOnlineLocation sets the location used for online events.
func WithOnlineLocation(location string) Option {
	return func(c *Composer) { c.onlineLocation = location }
}

// New creates a Composer for vocab whose timestamps carry offset.
func New(vocab event.Vocabulary, offset string, opts ...Option) (*Composer, error) {
	if offset == "" {
		offset = DefaultOffset
	}
	loc, err := dateutil.ParseOffset(offset)
	if err != nil {
		return nil, fmt.Errorf("timezone offset: %w", err)
	}

	c := &Composer{
		vocab:          vocab,
		audience:       []string{event.TagInPerson, event.TagOnline},
		offset:         offset,
		loc:            loc,
		onlineLocation: DefaultOnlineLocation,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Audience returns the audience tags.
func (c *Composer) Audience() []string {
	return c.audience
}

// OnlineLocation returns the location placeholder for online events.
func (c *Composer) OnlineLocation() string {
	return c.onlineLocation
}

// Record validates d and returns the canonical record without an id.
func (c *Composer) Record(d Draft) (event.Raw, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return event.Raw{}, ErrMissingTitle
	}
	if d.StartDate == "" || d.EndDate == "" {
		return event.Raw{}, ErrMissingDate
	}
	if (d.StartTime != "") != (d.EndTime != "") {
		return event.Raw{}, ErrTimePairing
	}

	tags := c.vocab.Sanitize(d.Tags)
	if !c.hasAudience(tags) {
		return event.Raw{}, ErrMissingAudienceTag
	}

	start, err := c.timestamp(d.StartDate, d.StartTime)
	if err != nil {
		return event.Raw{}, err
	}
	end, err := c.timestamp(d.EndDate, d.EndTime)
	if err != nil {
		return event.Raw{}, err
	}
	startAt, _ := event.ParseTimestamp(start, c.loc)
	endAt, _ := event.ParseTimestamp(end, c.loc)
	if endAt.Before(startAt) {
		return event.Raw{}, ErrEndBeforeStart
	}

	status := d.Status
	if status == "" {
		status = string(event.StatusConfirmed)
	}
	if !event.Status(status).Valid() {
		return event.Raw{}, ErrInvalidStatus
	}

	location := strings.TrimSpace(d.Location)
	if d.Online {
		location = c.onlineLocation
	}

	return event.Raw{
		Title:     title,
		Start:     start,
		End:       end,
		Location:  location,
		Organizer: strings.TrimSpace(d.Organizer),
		URL:       strings.TrimSpace(d.URL),
		Contact:   strings.TrimSpace(d.Contact),
		Status:    status,
		Tags:      tags,
	}, nil
}

// Build validates d and serializes it. On any violation no output is
// produced.
func (c *Composer) Build(d Draft) (Output, error) {
	record, err := c.Record(d)
	if err != nil {
		return Output{}, err
	}
	data, err := Marshal(record)
	if err != nil {
		return Output{}, err
	}
	return Output{
		Record:   record,
		JSON:     string(data),
		FileName: FileName(record.Title),
	}, nil
}

func (c *Composer) hasAudience(tags []string) bool {
	for _, tag := range tags {
		for _, a := range c.audience {
			if tag == a {
				return true
			}
		}
	}
	return false
}

func (c *Composer) timestamp(date, clock string) (string, error) {
	if _, err := time.Parse(dateutil.DayLayout, date); err != nil {
		return "", ErrInvalidDate
	}
	ts := CombineDateTime(date, clock, c.offset)
	if clock != "" {
		if _, err := time.Parse("2006-01-02T15:04:05Z07:00", ts); err != nil {
			return "", ErrInvalidDate
		}
	}
	return ts, nil
}

// CombineDateTime joins a date and an optional HH:MM[:SS] time with offset.
// A date without a time stays a plain all-day date.
func CombineDateTime(date, clock, offset string) string {
	if date == "" {
		return ""
	}
	if clock == "" {
		return date
	}
	if len(clock) == 5 {
		clock += ":00"
	}
	return date + "T" + clock + offset
}

// Marshal encodes a record with 4-space indentation and unescaped text.
func Marshal(record event.Raw) ([]byte, error) {
	if record.Tags == nil {
		record.Tags = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(record); err != nil {
		return nil, fmt.Errorf("encoding event: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

var slugSeparator = regexp.MustCompile(`[^a-z0-9\x{4e00}-\x{9fff}]+`)

// Slug lowercases title, collapses every run of characters other than
// ASCII letters, digits and CJK ideographs into "-", trims the separators
// and caps the length.
func Slug(title string) string {
	slug := slugSeparator.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if r := []rune(slug); len(r) > MaxSlugLength {
		slug = string(r[:MaxSlugLength])
	}
	return slug
}

// FileName suggests the data file name for title.
func FileName(title string) string {
	slug := Slug(title)
	if slug == "" {
		slug = DefaultFileName
	}
	return slug + ".json"
}
