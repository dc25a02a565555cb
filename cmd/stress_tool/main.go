package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"
)

// Options 压测参数
type Options struct {
	BaseURL     string
	Email       string
	Password    string
	PostID      string
	Concurrency int
}

// Stats 压测结果
type Stats struct {
	Total     int
	Succeeded int
	Conflicts int
	Failed    int
	Duration  time.Duration
}

func newHTTPClient() *http.Client {
	// 优化 HTTP Client 配置
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 2000
	t.MaxIdleConnsPerHost = 2000
	t.MaxConnsPerHost = 2000
	return &http.Client{Transport: t, Timeout: 10 * time.Second}
}

func main() {
	var opts Options
	flag.StringVar(&opts.BaseURL, "url", "http://localhost:8080", "Base URL of the API server")
	flag.StringVar(&opts.Email, "email", "", "Account email used to sign in")
	flag.StringVar(&opts.Password, "password", "", "Account password")
	flag.StringVar(&opts.PostID, "post", "", "Post ID to bookmark")
	flag.IntVar(&opts.Concurrency, "n", 1000, "Concurrent bookmark requests")
	flag.Parse()

	if opts.Email == "" || opts.Password == "" || opts.PostID == "" {
		flag.Usage()
		os.Exit(1)
	}

	fmt.Printf("开始压测：%d 个并发请求收藏同一篇报告 (PostID: %s)...\n", opts.Concurrency, opts.PostID)
	stats, err := Run(context.Background(), newHTTPClient(), opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("--------------------------------------------------")
	fmt.Printf("压测结束，耗时: %v\n", stats.Duration)
	fmt.Printf("总请求数: %d\n", stats.Total)
	fmt.Printf("QPS: %.2f\n", float64(stats.Total)/stats.Duration.Seconds())
	fmt.Printf("收藏成功: %d (预期: 1)\n", stats.Succeeded)
	fmt.Printf("重复收藏: %d\n", stats.Conflicts)
	fmt.Printf("其他失败: %d\n", stats.Failed)
	fmt.Println("--------------------------------------------------")

	if stats.Succeeded > 1 {
		os.Exit(2)
	}
}

// Run 登录后并发收藏同一篇报告，唯一索引应保证只有一次成功
func Run(ctx context.Context, client *http.Client, opts Options) (*Stats, error) {
	cookie, err := signin(ctx, client, opts)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Total: opts.Concurrency}
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	start := time.Now()
	for i := 0; i < opts.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status := addBookmark(ctx, client, opts, cookie)
			mu.Lock()
			defer mu.Unlock()
			switch status {
			case http.StatusOK:
				stats.Succeeded++
			case http.StatusConflict:
				stats.Conflicts++
			default:
				stats.Failed++
			}
		}()
	}
	wg.Wait()
	stats.Duration = time.Since(start)

	// 清理，便于重复压测
	removeBookmark(ctx, client, opts, cookie)
	return stats, nil
}

func signin(ctx context.Context, client *http.Client, opts Options) (*http.Cookie, error) {
	body, _ := json.Marshal(map[string]string{"email": opts.Email, "password": opts.Password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.BaseURL+"/api/auth/signin", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("signin: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("signin failed (%d): %s", resp.StatusCode, msg)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "access_token" {
			return c, nil
		}
	}
	return nil, errors.New("signin response carried no access_token cookie")
}

func addBookmark(ctx context.Context, client *http.Client, opts Options, cookie *http.Cookie) int {
	body, _ := json.Marshal(map[string]string{"postId": opts.PostID})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.BaseURL+"/api/bookmark/add", bytes.NewReader(body))
	if err != nil {
		return 0
	}
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)

	resp, err := client.Do(req)
	if err != nil {
		return 0
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode
}

func removeBookmark(ctx context.Context, client *http.Client, opts Options, cookie *http.Cookie) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, opts.BaseURL+"/api/bookmark/remove/"+opts.PostID, nil)
	if err != nil {
		return
	}
	req.AddCookie(cookie)
	if resp, err := client.Do(req); err == nil {
		resp.Body.Close()
	}
}
