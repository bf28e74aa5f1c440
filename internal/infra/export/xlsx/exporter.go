// Package xlsx выгружает бронирования в файл Excel.
package xlsx

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/jalali"
)

const (
	defaultSheet = "Sheet1"
	sheetName    = "رزروها"
)

var ErrWriteFile = errors.New("xlsx: failed to write file")

// Заголовки колонок (на фарси, как в панели администратора)
var header = []string{"شناسه", "نام مشتری", "شماره تماس", "تاریخ", "روز", "ساعت", "تاریخ میلادی", "زمان ثبت"}

// Exporter формирует xlsx с одной строкой на бронирование
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// WriteReservations пишет заголовок и строки бронирований в w
func (e *Exporter) WriteReservations(w io.Writer, reservations []*domain.Reservation) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return fmt.Errorf("%w: rename sheet: %v", ErrWriteFile, err)
	}

	rtl := true
	if err := f.SetSheetView(sheetName, -1, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return fmt.Errorf("%w: sheet view: %v", ErrWriteFile, err)
	}

	if err := writeRow(f, 1, toCells(header)); err != nil {
		return err
	}

	// Жирный шрифт для заголовка, ошибка стиля не критична
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = f.SetCellStyle(sheetName, "A1", last, style)
	}

	for i, r := range reservations {
		row := []interface{}{
			r.ID,
			r.CustomerName,
			r.PhoneNumber,
			jalali.FormatJalali(r.Date),
			jalali.WeekdayName(r.Date),
			r.Time.String(),
			jalali.FormatISO(r.Date),
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := writeRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFile, err)
	}
	return nil
}

func writeRow(f *excelize.File, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("%w: cell name: %v", ErrWriteFile, err)
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("%w: row %d: %v", ErrWriteFile, rowNum, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
