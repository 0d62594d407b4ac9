package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
)

// maxHeadlines 限制单次新闻查询回传给模型的条目数。
const maxHeadlines = 3

// NewsService 通过 NewsData.io 检索某个主题的英文新闻。
type NewsService struct {
	BaseURL    string
	APIKey     string
	UserAgent  string
	HTTPClient *http.Client
}

// call 是注册表使用的入口：解出模型给出的 topic 参数后执行查询。
func (s *NewsService) call(ctx context.Context, args map[string]any) Result {
	var in struct {
		Topic string `mapstructure:"topic"`
	}
	if err := mapstructure.Decode(args, &in); err != nil {
		return Result{"error": fmt.Sprintf("Failed to fetch news: invalid arguments: %v", err)}
	}
	return s.Lookup(ctx, in.Topic)
}

// Lookup 检索主题新闻，取前三条结果中标题非空的条目，只保留 title/link。
// APIKey 缺失不会提前报错，由上游以非 2xx 响应暴露。
func (s *NewsService) Lookup(ctx context.Context, topic string) Result {
	query := url.Values{}
	query.Set("apikey", s.APIKey)
	query.Set("q", topic)
	query.Set("language", "en")
	query.Set("country", "us")
	query.Set("page", "0")

	body, err := fetchJSON(ctx, s.HTTPClient, s.UserAgent, s.BaseURL, query)
	if err != nil {
		return Result{"error": fmt.Sprintf("Failed to fetch news: %v", err)}
	}

	articles := gjson.GetBytes(body, "results").Array()
	if len(articles) > maxHeadlines {
		articles = articles[:maxHeadlines]
	}
	headlines := make([]Result, 0, len(articles))
	for _, article := range articles {
		title := article.Get("title").String()
		if title == "" {
			continue
		}
		headlines = append(headlines, Result{
			"title": title,
			"link":  article.Get("link").String(),
		})
	}
	return Result{"topic": topic, "headlines": headlines}
}
