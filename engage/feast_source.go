package engage

import (
	"context"
	"fmt"
	"strings"

	feastsdk "github.com/feast-dev/feast/sdk/go"

	"github.com/venuzlabs/feedkit/core"
)

// Feast 特征名：离线作业把互动排行物化到 Feature Store，
// 在线侧按 viewer_id 取回（逗号分隔字符串）。
const (
	featureTopCategories = "viewer_stats:top_categories"
	featureTopTags       = "viewer_stats:top_tags"
	entityViewerID       = "viewer_id"
)

// FeastSource 是基于 Feast Feature Store 的 EngagementSource 实现。
// 排行的计算（计数、衰减、窗口）由离线特征工程负责，在线侧只读。
type FeastSource struct {
	client  *feastsdk.GrpcClient
	project string
}

var _ core.EngagementSource = (*FeastSource)(nil)

// NewFeastSource 连接 Feast Feature Server。
func NewFeastSource(host string, port int, project string) (*FeastSource, error) {
	if port == 0 {
		port = 6565
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleEngage, core.ErrorCodeUnavailable,
			fmt.Sprintf("engage: connect feast: %v", err))
	}
	return &FeastSource{client: client, project: project}, nil
}

func (s *FeastSource) TopCategories(ctx context.Context, viewerID string) ([]string, error) {
	return s.fetchList(ctx, viewerID, featureTopCategories, maxTopCategories)
}

func (s *FeastSource) TopTags(ctx context.Context, viewerID string) ([]string, error) {
	return s.fetchList(ctx, viewerID, featureTopTags, maxTopTags)
}

func (s *FeastSource) fetchList(ctx context.Context, viewerID, feature string, max int) ([]string, error) {
	if viewerID == "" {
		return nil, nil
	}

	req := &feastsdk.OnlineFeaturesRequest{
		Features: []string{feature},
		Entities: []feastsdk.Row{
			{entityViewerID: feastsdk.StrVal(viewerID)},
		},
		Project: s.project,
	}

	resp, err := s.client.GetOnlineFeatures(ctx, req)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleEngage, core.ErrorCodeUnavailable,
			fmt.Sprintf("engage: get online features: %v", err))
	}

	rows := resp.Rows()
	if len(rows) == 0 {
		return nil, nil
	}

	// Rows() 的 key 可能是全名（view:feature）或短名
	val, ok := rows[0][feature]
	if !ok {
		short := feature
		if idx := strings.LastIndex(feature, ":"); idx >= 0 {
			short = feature[idx+1:]
		}
		val, ok = rows[0][short]
	}
	if !ok || val == nil {
		return nil, nil
	}

	return splitList(val.GetStringVal(), max), nil
}

func splitList(raw string, max int) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}
