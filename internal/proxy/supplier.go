package proxy

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

const (
	maxParallelChecks = 20
	checkTimeout      = 5 * time.Second
)

// ProxySupplier hands out healthy proxies in round-robin order
type ProxySupplier interface {
	Get() string
	Len() int
}

type proxySupplier struct {
	proxies []string
	current int
	mutex   sync.Mutex
}

// NewProxySupplier checks every configured proxy against probeURL and keeps
// the ones that answer. Healthy proxies keep their configured order.
func NewProxySupplier(ctx context.Context, proxies []string, probeURL string) (ProxySupplier, error) {
	if len(proxies) == 0 {
		return &proxySupplier{proxies: []string{}}, nil
	}

	log.Infof("🔄 Checking %d proxies against %s...", len(proxies), probeURL)

	healthy := make([]bool, len(proxies))
	semaphore := make(chan struct{}, maxParallelChecks)

	var wg sync.WaitGroup
	for i, proxyURL := range proxies {
		wg.Add(1)

		go func(index int, proxyURL string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if probe(ctx, proxyURL, probeURL) {
				healthy[index] = true
				log.Infof("✅ Proxy %s is working", proxyURL)
			} else {
				log.Infof("❌ Proxy %s is not working, skipping", proxyURL)
			}
		}(i, proxyURL)
	}
	wg.Wait()

	valid := make([]string, 0, len(proxies))
	for i, ok := range healthy {
		if ok {
			valid = append(valid, proxies[i])
		}
	}

	log.Infof("✅ ProxySupplier initialized with %d working proxies out of %d checked", len(valid), len(proxies))

	return &proxySupplier{proxies: valid}, nil
}

// Get returns the next proxy URL, or "" when none is available.
func (p *proxySupplier) Get() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}

	proxyURL := p.proxies[p.current]
	p.current = (p.current + 1) % len(p.proxies)

	return proxyURL
}

func (p *proxySupplier) Len() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.proxies)
}

func probe(ctx context.Context, proxyURL, probeURL string) bool {
	client := resty.New().
		SetTimeout(checkTimeout).
		SetRetryCount(0).
		SetProxy(proxyURL)

	resp, err := client.R().
		SetContext(ctx).
		Get(probeURL)
	if err != nil {
		log.Debugf("Proxy probe failed for %s: %v", proxyURL, err)
		return false
	}

	if resp.IsError() {
		log.Debugf("Proxy probe failed for %s with status: %s", proxyURL, resp.Status())
		return false
	}

	return true
}
