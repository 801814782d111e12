package notion

import (
	"context"

	"github.com/jomei/notionapi"
)

//go:generate mockgen -source=notion.go -destination=mock_notion/mock_notion.go -package=mock_notion
type (
	PageService interface {
		Create(context.Context, *notionapi.PageCreateRequest) (*notionapi.Page, error)
	}

	DatabaseService interface {
		Create(context.Context, *notionapi.DatabaseCreateRequest) (*notionapi.Database, error)
		Query(context.Context, notionapi.DatabaseID, *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
	}

	BlockService interface {
		AppendChildren(context.Context, notionapi.BlockID, *notionapi.AppendBlockChildrenRequest) (*notionapi.AppendBlockChildrenResponse, error)
		GetChildren(context.Context, notionapi.BlockID, *notionapi.Pagination) (*notionapi.GetChildrenResponse, error)
		Delete(context.Context, notionapi.BlockID) (notionapi.Block, error)
	}

	NotionClient interface {
		Page() PageService
		Database() DatabaseService
		Block() BlockService
	}
)
