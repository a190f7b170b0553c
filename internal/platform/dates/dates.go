package dates

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrBadDate = errors.New("date must be YYYY-MM-DD")
)

// Date representa un día calendario puro (sin hora, sin zona horaria).
// Los formularios mandan "YYYY-MM-DD" y eso debe volver como el MISMO día
// calendario en cualquier runtime. Por eso se parsea separando componentes,
// nunca interpretando el string como instante ISO (que en UTC+X se corre un día).
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Parse separa "YYYY-MM-DD" en componentes enteros y arma el Date explícito.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Date{}, ErrBadDate
	}

	y, err := strconv.Atoi(parts[0])
	if err != nil || y < 1 {
		return Date{}, ErrBadDate
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return Date{}, ErrBadDate
	}
	d, err := strconv.Atoi(parts[2])
	if err != nil || d < 1 || d > 31 {
		return Date{}, ErrBadDate
	}

	dt := Date{Year: y, Month: time.Month(m), Day: d}

	// Rechaza días inexistentes (ej: 2024-02-30) comparando contra la
	// normalización de time.Date.
	if t := dt.Time(); t.Day() != d || t.Month() != time.Month(m) || t.Year() != y {
		return Date{}, ErrBadDate
	}

	return dt, nil
}

// ParseOptional devuelve nil para string vacío.
func ParseOptional(s string) (*Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FromTime toma solo los componentes calendario del instante, en su propia zona.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today es FromTime(now()); separado para que los services puedan inyectar now.
func Today(now func() time.Time) Date {
	return FromTime(now())
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time ancla el día a medianoche UTC, solo para aritmética y persistencia.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

func (d Date) Equal(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

// AddDays suma días calendario (time.Date normaliza overflow de mes/año).
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// DaysUntil cuenta días enteros de hoy hasta due, con techo sobre tramos de 24h.
// Para fechas puras ambos lados caen en medianoche y el techo es exacto;
// se mantiene el ceil por contrato (recordatorios cuentan días "que faltan").
func DaysUntil(today, due Date) int {
	diff := due.Time().Sub(today.Time())
	return int(math.Ceil(diff.Hours() / 24))
}

// MarshalJSON emite el string plano "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ErrBadDate
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
