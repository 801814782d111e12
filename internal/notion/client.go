package notion

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jomei/notionapi"

	"github.com/fabwerk90/second-brain-collector/internal/config"
	"github.com/fabwerk90/second-brain-collector/internal/logger"
	"github.com/fabwerk90/second-brain-collector/internal/models"
)

// maxChildrenPerAppend is Notion's limit on blocks per append call.
const maxChildrenPerAppend = 100

// urlPropertyNames are the property names checked when looking for a
// video link on a page.
var urlPropertyNames = []string{"URL", "Link", "Url", "url", "link"}

// Client wraps the Notion API client with the operations both pipelines need
type Client struct {
	client     NotionClient
	databaseID notionapi.DatabaseID
}

// New creates a new Notion client from a validated configuration
func New(cfg *config.Config) *Client {
	notionClient := notionapi.NewClient(notionapi.Token(cfg.Token))
	return NewWithClient(newNotionClientAdapter(notionClient), cfg.DatabaseID)
}

// NewWithClient creates a Notion client on top of an explicitly supplied
// API client. Tests use this to substitute mocks.
func NewWithClient(client NotionClient, databaseID string) *Client {
	return &Client{
		client:     client,
		databaseID: notionapi.DatabaseID(databaseID),
	}
}

// CreateBookPage creates a page for a book in the configured database and
// returns its ID. The page is categorized as "Book / Kindle".
func (c *Client) CreateBookPage(ctx context.Context, title string) (notionapi.PageID, error) {
	logger.Debug("Creating book page", map[string]interface{}{
		"title": title,
	})

	page, err := c.client.Page().Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       "database_id",
			DatabaseID: c.databaseID,
		},
		Properties: notionapi.Properties{
			"Name": notionapi.TitleProperty{
				Title: richText(title),
			},
			"Category": notionapi.SelectProperty{
				Select: notionapi.Option{
					Name: "Book / Kindle",
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create book page: %w", err)
	}

	logger.Info("Created book page", map[string]interface{}{
		"title":   title,
		"page_id": string(page.ID),
	})

	return notionapi.PageID(page.ID), nil
}

// CreateHighlightDatabase creates the inline "All Kindle Highlights"
// database under the given page and returns its ID.
func (c *Client) CreateHighlightDatabase(ctx context.Context, pageID notionapi.PageID) (notionapi.DatabaseID, error) {
	db, err := c.client.Database().Create(ctx, &notionapi.DatabaseCreateRequest{
		Parent: notionapi.Parent{
			Type:   "page_id",
			PageID: pageID,
		},
		Title: richText("All Kindle Highlights"),
		Properties: notionapi.PropertyConfigs{
			"Quote No.": notionapi.TitlePropertyConfig{
				Type:  "title",
				Title: struct{}{},
			},
			"Quote": notionapi.RichTextPropertyConfig{
				Type:     "rich_text",
				RichText: struct{}{},
			},
			"Notes": notionapi.RichTextPropertyConfig{
				Type:     "rich_text",
				RichText: struct{}{},
			},
		},
		IsInline: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create highlight database: %w", err)
	}

	logger.Info("Created highlight database", map[string]interface{}{
		"database_id": string(db.ID),
	})

	return notionapi.DatabaseID(db.ID), nil
}

// AddHighlights adds one row per highlight to the database, numbered from 1.
// Failed rows are logged and skipped; the success count is returned.
func (c *Client) AddHighlights(ctx context.Context, databaseID notionapi.DatabaseID, highlights []models.Highlight) (int, error) {
	successCount := 0
	for i, h := range highlights {
		_, err := c.client.Page().Create(ctx, &notionapi.PageCreateRequest{
			Parent: notionapi.Parent{
				Type:       "database_id",
				DatabaseID: databaseID,
			},
			Properties: notionapi.Properties{
				"Quote No.": notionapi.TitleProperty{
					Title: richText(strconv.Itoa(i + 1)),
				},
				"Quote": notionapi.RichTextProperty{
					RichText: richText(h.Text),
				},
				"Notes": notionapi.RichTextProperty{
					RichText: richText(h.Note),
				},
			},
		})
		if err != nil {
			logger.Error("Failed to add highlight", err, map[string]interface{}{
				"quote_no": i + 1,
				"location": h.Location,
			})
			continue
		}
		successCount++
	}

	if successCount == 0 && len(highlights) > 0 {
		return 0, fmt.Errorf("failed to add any of the %d highlights", len(highlights))
	}

	return successCount, nil
}

// ArchiveRawText appends a "Source" heading to the book page and stores the
// raw export text on a child page, chunked to fit the block size limit.
func (c *Client) ArchiveRawText(ctx context.Context, pageID notionapi.PageID, chunks []models.TranscriptChunk) error {
	_, err := c.client.Block().AppendChildren(ctx, notionapi.BlockID(pageID), &notionapi.AppendBlockChildrenRequest{
		Children: []notionapi.Block{
			createHeading2Block("Source"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to append source heading: %w", err)
	}

	page, err := c.client.Page().Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:   "page_id",
			PageID: pageID,
		},
		Properties: notionapi.Properties{
			"title": notionapi.TitleProperty{
				Title: richText("Source Raw Text"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create raw text page: %w", err)
	}

	// Appended after creation so exports longer than the per-call block
	// limit still fit.
	if err := c.appendParagraphs(ctx, notionapi.BlockID(page.ID), chunks); err != nil {
		return fmt.Errorf("failed to append raw text blocks: %w", err)
	}

	return nil
}

// ListVideoPages queries the configured database for pages with
// Category = "YouTube" and returns those carrying a URL property.
func (c *Client) ListVideoPages(ctx context.Context) ([]models.VideoPage, error) {
	var pages []models.VideoPage
	var cursor notionapi.Cursor

	for {
		resp, err := c.client.Database().Query(ctx, c.databaseID, &notionapi.DatabaseQueryRequest{
			Filter: notionapi.PropertyFilter{
				Property: "Category",
				Select: &notionapi.SelectFilterCondition{
					Equals: "YouTube",
				},
			},
			StartCursor: cursor,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query database: %w", err)
		}

		for _, page := range resp.Results {
			url := extractURL(page.Properties)
			if url == "" {
				logger.Warn("No video URL found on page", map[string]interface{}{
					"page_id": string(page.ID),
				})
				continue
			}
			pages = append(pages, models.VideoPage{
				PageID: string(page.ID),
				URL:    url,
			})
		}

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return pages, nil
}

// ReplacePageContent clears a page's existing blocks and appends one
// paragraph block per transcript chunk.
func (c *Client) ReplacePageContent(ctx context.Context, pageID string, chunks []models.TranscriptChunk) error {
	if err := c.clearPageContent(ctx, notionapi.BlockID(pageID)); err != nil {
		return err
	}

	return c.appendParagraphs(ctx, notionapi.BlockID(pageID), chunks)
}

// appendParagraphs appends one paragraph block per chunk to the given
// block, batched to Notion's per-call limit.
func (c *Client) appendParagraphs(ctx context.Context, blockID notionapi.BlockID, chunks []models.TranscriptChunk) error {
	children := paragraphBlocks(chunks)
	for start := 0; start < len(children); start += maxChildrenPerAppend {
		end := start + maxChildrenPerAppend
		if end > len(children) {
			end = len(children)
		}
		_, err := c.client.Block().AppendChildren(ctx, blockID, &notionapi.AppendBlockChildrenRequest{
			Children: children[start:end],
		})
		if err != nil {
			return fmt.Errorf("failed to append content blocks: %w", err)
		}
	}

	return nil
}

// clearPageContent deletes all child blocks of a page
func (c *Client) clearPageContent(ctx context.Context, pageID notionapi.BlockID) error {
	for {
		resp, err := c.client.Block().GetChildren(ctx, pageID, &notionapi.Pagination{})
		if err != nil {
			return fmt.Errorf("failed to list page blocks: %w", err)
		}

		for _, block := range resp.Results {
			if _, err := c.client.Block().Delete(ctx, block.GetID()); err != nil {
				return fmt.Errorf("failed to delete block %s: %w", block.GetID(), err)
			}
		}

		if !resp.HasMore {
			return nil
		}
	}
}

// extractURL looks for a URL property under the common property names.
func extractURL(properties notionapi.Properties) string {
	for _, name := range urlPropertyNames {
		switch prop := properties[name].(type) {
		case *notionapi.URLProperty:
			return prop.URL
		case notionapi.URLProperty:
			return prop.URL
		}
	}
	return ""
}

// paragraphBlocks converts chunks into paragraph blocks, one per chunk.
func paragraphBlocks(chunks []models.TranscriptChunk) []notionapi.Block {
	blocks := make([]notionapi.Block, 0, len(chunks))
	for _, chunk := range chunks {
		blocks = append(blocks, createParagraphBlock(chunk.Text))
	}
	return blocks
}

func richText(content string) []notionapi.RichText {
	return []notionapi.RichText{
		{
			Text: &notionapi.Text{
				Content: content,
			},
		},
	}
}

// createHeading2Block creates a level 2 heading block
func createHeading2Block(text string) notionapi.Block {
	return &notionapi.Heading2Block{
		BasicBlock: notionapi.BasicBlock{
			Object: "block",
			Type:   notionapi.BlockTypeHeading2,
		},
		Heading2: notionapi.Heading{
			RichText: richText(text),
		},
	}
}

// createParagraphBlock creates a paragraph block
func createParagraphBlock(text string) notionapi.Block {
	return &notionapi.ParagraphBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: "block",
			Type:   notionapi.BlockTypeParagraph,
		},
		Paragraph: notionapi.Paragraph{
			RichText: richText(text),
		},
	}
}
