package sheetsclient

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/utils"
)

// Client wraps the Google Sheets API client
type Client struct {
	service *sheets.Service
	logger  *zap.Logger
}

// NewClient creates a Sheets client, running the OAuth flow if no token is stored for env
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, env string, logger *zap.Logger) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	store, err := utils.NewTokenStore(env)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}

	token, err := utils.GetTokenWithFlow(ctx, oauthConfig, store, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(oauthConfig.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{service: service, logger: logger}, nil
}

// createSheet adds a tab to the spreadsheet and returns its sheet id
func (c *Client) createSheet(spreadsheetID, title string) (int64, error) {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}

	resp, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, req).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to create sheet: %w", err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil {
		return 0, fmt.Errorf("unexpected response from create sheet")
	}

	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

// existingTabs returns the titles of every tab in the spreadsheet
func (c *Client) existingTabs(spreadsheetID string) (map[string]bool, error) {
	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet metadata: %w", err)
	}

	tabs := make(map[string]bool, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		tabs[sheet.Properties.Title] = true
	}
	return tabs, nil
}

// writeTab replaces the contents of a tab, creating it first when missing.
// Republishing a month therefore never leaves stale rows behind.
func (c *Client) writeTab(spreadsheetID, title string, rows [][]interface{}, tabs map[string]bool) error {
	if tabs[title] {
		c.logger.Debug("Clearing existing tab", zap.String("tab", title))
		_, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, title, &sheets.ClearValuesRequest{}).Do()
		if err != nil {
			return fmt.Errorf("failed to clear tab %q: %w", title, err)
		}
	} else {
		c.logger.Debug("Creating tab", zap.String("tab", title))
		if _, err := c.createSheet(spreadsheetID, title); err != nil {
			return fmt.Errorf("failed to create tab %q: %w", title, err)
		}
	}

	_, err := c.service.Spreadsheets.Values.Update(
		spreadsheetID,
		fmt.Sprintf("%s!A1", title),
		&sheets.ValueRange{Values: rows},
	).ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to write tab %q: %w", title, err)
	}

	return nil
}
