// Package slotcache кэширует рассчитанное расписание дня в Redis.
//
// Каждая дата имеет поколение: Invalidate увеличивает его, а Set записывает
// расписание, только если поколение не менялось с момента чтения перед расчетом.
// Так расписание, рассчитанное до коммита бронирования, не попадает в кэш после сброса.
package slotcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

const (
	DefaultPrefix = "barber:slots:"
	scanBatch     = 100

	dayNamespace   = "day:"
	genNamespace   = "gen:"
	epochKey       = "epoch"
	generationTTL  = 24 * time.Hour
	emptyCounter   = "0"
	generationJoin = ":"
)

// setIfCurrent пишет расписание, если эпоха и поколение даты совпадают с прочитанными
var setIfCurrent = redis.NewScript(`
local current = (redis.call('GET', KEYS[1]) or '0') .. ':' .. (redis.call('GET', KEYS[2]) or '0')
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[3], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[3], ARGV[2])
end
return 1
`)

var (
	ErrRead   = errors.New("slotcache: failed to read")
	ErrWrite  = errors.New("slotcache: failed to write")
	ErrDecode = errors.New("slotcache: failed to decode entry")
)

// Metrics счетчик попаданий и промахов
type Metrics interface {
	CacheResult(result string)
}

// Cache кэш расписаний по ISO дате
type Cache struct {
	client  *redis.Client
	prefix  string
	ttl     time.Duration
	metrics Metrics
}

// New создает кэш. metrics может быть nil.
func New(client *redis.Client, prefix string, ttl time.Duration, metrics Metrics) *Cache {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Cache{client: client, prefix: prefix, ttl: ttl, metrics: metrics}
}

type slotEntry struct {
	Time      types.TimeString `json:"time"`
	Available bool             `json:"available"`
	Disabled  bool             `json:"disabled"`
}

type entry struct {
	Date          string           `json:"date"`
	IsHoliday     bool             `json:"is_holiday"`
	HolidayReason string           `json:"holiday_reason,omitempty"`
	Start         types.TimeString `json:"start"`
	End           types.TimeString `json:"end"`
	Slots         []slotEntry      `json:"slots"`
}

// Get возвращает расписание; ok == false при промахе
func (c *Cache) Get(ctx context.Context, date time.Time) (*domain.DaySchedule, bool, error) {
	raw, err := c.client.Get(ctx, c.key(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.count("miss")
		return nil, false, nil
	}
	if err != nil {
		c.count("error")
		return nil, false, fmt.Errorf("%w: %v", ErrRead, err)
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.count("error")
		return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	schedule, err := e.toDomain()
	if err != nil {
		c.count("error")
		return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	c.count("hit")
	return schedule, true, nil
}

// Generation текущее поколение даты; читается до расчета расписания и передается в Set
func (c *Cache) Generation(ctx context.Context, date time.Time) (string, error) {
	values, err := c.client.MGet(ctx, c.prefix+epochKey, c.genKey(date)).Result()
	if err != nil {
		return "", fmt.Errorf("%w: generation: %v", ErrRead, err)
	}

	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = emptyCounter
		if str, ok := v.(string); ok {
			parts[i] = str
		}
	}
	return strings.Join(parts, generationJoin), nil
}

// Set сохраняет расписание на ttl, если поколение даты все еще равно generation.
// Устаревшее расписание молча отбрасывается.
func (c *Cache) Set(ctx context.Context, schedule *domain.DaySchedule, generation string) error {
	data, err := json.Marshal(fromDomain(schedule))
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrWrite, err)
	}

	keys := []string{c.prefix + epochKey, c.genKey(schedule.Date), c.key(schedule.Date)}
	written, err := setIfCurrent.Run(ctx, c.client, keys, generation, data, c.ttl.Milliseconds()).Int64()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if written == 0 {
		c.count("stale")
	}
	return nil
}

// Invalidate сдвигает поколение даты и удаляет ее расписание
func (c *Cache) Invalidate(ctx context.Context, date time.Time) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey(date))
		pipe.Expire(ctx, c.genKey(date), generationTTL)
		pipe.Del(ctx, c.key(date))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: invalidate: %v", ErrWrite, err)
	}
	return nil
}

// InvalidateAll сдвигает эпоху и удаляет все расписания (изменились часы по умолчанию или глобальные слоты)
func (c *Cache) InvalidateAll(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.prefix+epochKey).Err(); err != nil {
		return fmt.Errorf("%w: epoch: %v", ErrWrite, err)
	}

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+dayNamespace+"*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("%w: scan: %v", ErrRead, err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("%w: delete: %v", ErrWrite, err)
			}
		}

		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// PingContext проверяет доступность Redis
func (c *Cache) PingContext(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) key(date time.Time) string {
	return c.prefix + dayNamespace + domain.FormatDate(date)
}

func (c *Cache) genKey(date time.Time) string {
	return c.prefix + genNamespace + domain.FormatDate(date)
}

func (c *Cache) count(result string) {
	if c.metrics != nil {
		c.metrics.CacheResult(result)
	}
}

func fromDomain(s *domain.DaySchedule) entry {
	e := entry{
		Date:          domain.FormatDate(s.Date),
		IsHoliday:     s.IsHoliday,
		HolidayReason: s.HolidayReason,
		Start:         s.WorkingHours.Start,
		End:           s.WorkingHours.End,
		Slots:         make([]slotEntry, 0, len(s.Slots)),
	}
	for _, slot := range s.Slots {
		e.Slots = append(e.Slots, slotEntry{Time: slot.Time, Available: slot.Available, Disabled: slot.Disabled})
	}
	return e
}

func (e entry) toDomain() (*domain.DaySchedule, error) {
	date, err := domain.ParseDate(e.Date)
	if err != nil {
		return nil, err
	}

	s := &domain.DaySchedule{
		Date:          date,
		IsHoliday:     e.IsHoliday,
		HolidayReason: e.HolidayReason,
		WorkingHours:  domain.WorkingWindow{Start: e.Start, End: e.End},
		Slots:         make([]domain.Slot, 0, len(e.Slots)),
	}
	for _, slot := range e.Slots {
		s.Slots = append(s.Slots, domain.Slot{Time: slot.Time, Available: slot.Available, Disabled: slot.Disabled})
	}
	return s, nil
}
