// Package sheets adapts the Google Sheets API v4 to the narrow
// store.Spreadsheet interface. The spreadsheet must be shared with the
// service-account identity carried by the credential.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/ekaraca/bulut-istakip/models"
	"github.com/ekaraca/bulut-istakip/store"
)

type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// NewClient connects to the spreadsheet identified by spreadsheetID.
// Pass option.WithCredentialsFile or option.WithCredentialsJSON.
func NewClient(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Client, error) {
	opts = append(opts, option.WithScopes(sheetsapi.SpreadsheetsScope))
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	c := &Client{svc: svc, spreadsheetID: spreadsheetID}
	// One metadata read up front so a bad ID or an unshared sheet fails
	// at startup instead of on the first user action.
	if _, err := c.meta(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) meta(ctx context.Context) (*sheetsapi.Spreadsheet, error) {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet %s: %w", c.spreadsheetID, err)
	}
	return meta, nil
}

func (c *Client) Worksheet(ctx context.Context, title string) (store.Worksheet, error) {
	meta, err := c.meta(ctx)
	if err != nil {
		return nil, err
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return &worksheet{client: c, title: title, sheetID: sh.Properties.SheetId}, nil
		}
	}
	return nil, models.ErrNotFound
}

func (c *Client) AddWorksheet(ctx context.Context, title string, header []string) (store.Worksheet, error) {
	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: title},
			},
		}},
	}
	resp, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		// Another caller may have created the tab between our check and
		// this request; the API rejects duplicate titles with a 400.
		if apiErr, ok := err.(*googleapi.Error); ok && apiErr.Code == 400 {
			return c.Worksheet(ctx, title)
		}
		return nil, fmt.Errorf("add sheet %s: %w", title, err)
	}
	var sheetID int64
	for _, r := range resp.Replies {
		if r.AddSheet != nil && r.AddSheet.Properties != nil {
			sheetID = r.AddSheet.Properties.SheetId
		}
	}
	ws := &worksheet{client: c, title: title, sheetID: sheetID}
	if err := ws.appendRaw(ctx, header); err != nil {
		return nil, fmt.Errorf("write header of %s: %w", title, err)
	}
	return ws, nil
}

type worksheet struct {
	client  *Client
	title   string
	sheetID int64
}

// Rows returns all data rows, header excluded. The API trims trailing
// empty cells, so rows come back short; the codec treats the cells
// after the timestamp as optional.
func (w *worksheet) Rows(ctx context.Context) ([][]string, error) {
	resp, err := w.client.svc.Spreadsheets.Values.
		Get(w.client.spreadsheetID, fmt.Sprintf("%s!A2:Z", w.title)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", w.title, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (w *worksheet) Append(ctx context.Context, row []string) error {
	return w.appendRaw(ctx, row)
}

func (w *worksheet) appendRaw(ctx context.Context, row []string) error {
	_, err := w.client.svc.Spreadsheets.Values.
		Append(w.client.spreadsheetID, fmt.Sprintf("%s!A1", w.title), valueRange(row)).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", w.title, err)
	}
	return nil
}

// UpdateRow writes the whole row in one call. index is zero-based over
// data rows; sheet row numbers start at 1 and row 1 is the header.
func (w *worksheet) UpdateRow(ctx context.Context, index int, row []string) error {
	_, err := w.client.svc.Spreadsheets.Values.
		Update(w.client.spreadsheetID, fmt.Sprintf("%s!A%d", w.title, index+2), valueRange(row)).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update row %d of sheet %s: %w", index, w.title, err)
	}
	return nil
}

func (w *worksheet) DeleteRow(ctx context.Context, index int) error {
	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    w.sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(index + 1), // +1 skips the header
					EndIndex:   int64(index + 2),
				},
			},
		}},
	}
	if _, err := w.client.svc.Spreadsheets.BatchUpdate(w.client.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete row %d of sheet %s: %w", index, w.title, err)
	}
	return nil
}

func valueRange(row []string) *sheetsapi.ValueRange {
	cells := make([]interface{}, len(row))
	for i, c := range row {
		cells[i] = c
	}
	return &sheetsapi.ValueRange{Values: [][]interface{}{cells}}
}
