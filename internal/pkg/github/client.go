package github

import (
	"CodeConnect/internal/api/config"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var client *resty.Client

// RepoInfo GitHub 仓库元数据，只读
type RepoInfo struct {
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Language    string `json:"language"`
	HTMLURL     string `json:"html_url"`
	Archived    bool   `json:"archived"`
}

// Init 初始化 GitHub API 客户端
func Init() {
	cfg := config.Cfg.GitHub
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}

	client = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/vnd.github+json")

	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}
}

// GetRepository 拉取仓库元数据
func GetRepository(ctx context.Context, owner, repo string) (*RepoInfo, error) {
	var info RepoInfo
	resp, err := client.R().
		SetContext(ctx).
		SetResult(&info).
		Get(fmt.Sprintf("/repos/%s/%s", owner, repo))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("github api error: %s", resp.Status())
	}
	return &info, nil
}
