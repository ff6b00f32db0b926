// Package calendar converts between dates, dekads (ten-day periods) and
// their Indonesian labels.
package calendar

import (
	"fmt"
	"time"
)

// DekadsPerYear is the number of ten-day periods (dasarian) in a year.
const DekadsPerYear = 36

var (
	months      = [12]string{"Januari", "Februari", "Maret", "April", "Mei", "Juni", "Juli", "Agustus", "September", "Oktober", "November", "Desember"}
	shortMonths = [12]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}
	periods     = [3]string{"Awal", "Tengah", "Akhir"}
)

// Normalize maps any integer onto 1..36.
func Normalize(dekad int) int {
	return mod(dekad-1, DekadsPerYear) + 1
}

// Wrap returns the absolute dekad reached offset periods after start, where
// both are 1-based.
func Wrap(start, offset int) int {
	return mod((start-1)+(offset-1), DekadsPerYear) + 1
}

// DekadOf returns the 1-based dekad of the year containing t. Days 21 to
// month end fall in the third dekad.
func DekadOf(t time.Time) int {
	p := 3
	switch d := t.Day(); {
	case d <= 10:
		p = 1
	case d <= 20:
		p = 2
	}
	return (int(t.Month())-1)*3 + p
}

// Window returns n consecutive dekads from start, wrapping past d36 to d01.
func Window(start, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = Wrap(start, i+1)
	}
	return out
}

// Key is the per-dekad column name, d01 to d36.
func Key(dekad int) string {
	return fmt.Sprintf("d%02d", Normalize(dekad))
}

// Label formats a dekad as "Awal Oktober".
func Label(dekad int) string {
	m, p := split(dekad)
	return periods[p] + " " + months[m]
}

// ShortLabel formats a dekad as "Awal Okt".
func ShortLabel(dekad int) string {
	m, p := split(dekad)
	return periods[p] + " " + shortMonths[m]
}

// MonthName returns the Indonesian month name for 1..12, normalizing
// out-of-range values the way time.Date does.
func MonthName(month int) string {
	return months[mod(month-1, 12)]
}

// FormatDate renders "15 November 2025".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

func split(dekad int) (month, period int) {
	n := Normalize(dekad) - 1
	return n / 3, n % 3
}

func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
