package resolve

import "context"

type fetchDelegate func(ctx context.Context, url string) ([]byte, error)

type mockFetcher struct {
	FetchFn fetchDelegate
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if m.FetchFn != nil {
		return m.FetchFn(ctx, url)
	}

	return nil, nil
}
