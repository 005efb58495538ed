// 包 fetch 封装 HTTP 客户端（代理/超时），用于抓取订阅内容。
// 按设计每个订阅源每轮只请求一次，不做重试。
package fetch

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"
)

// defaultUserAgent 为抓取时的标识 UA，可通过环境变量 DIGEST_UA 覆盖。
const defaultUserAgent = "RSSDigest/1.0"

// Client 为单次尝试的 HTTP 客户端。
type Client struct {
	http *http.Client
	ua   string
}

// Options 为客户端构造参数。
type Options struct {
	ProxyHTTP  string
	ProxyHTTPS string
	Timeout    time.Duration
	UserAgent  string
}

// New 创建客户端，支持 http/https 代理与基础超时配置。
func New(opts Options) (*Client, error) {
	transport := &http.Transport{
		Proxy: func(req *http.Request) (*url.URL, error) {
			if req.URL.Scheme == "https" && opts.ProxyHTTPS != "" {
				return url.Parse(opts.ProxyHTTPS)
			}
			if req.URL.Scheme == "http" && opts.ProxyHTTP != "" {
				return url.Parse(opts.ProxyHTTP)
			}
			return http.ProxyFromEnvironment(req)
		},
		DialContext:         (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	cl := &http.Client{Transport: transport}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	cl.Timeout = opts.Timeout
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{http: cl, ua: ua}, nil
}

// Get 发起一次 GET 请求；非 2xx 状态码视为错误并关闭响应体。
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	ua := os.Getenv("DIGEST_UA")
	if ua == "" {
		ua = c.ua
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.Body != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("http status: %s", resp.Status)
	}
	return resp, nil
}
