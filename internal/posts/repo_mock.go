package posts

import (
	"context"
	"sort"
	"sync"
)

var _ postsRepo = (*repoMock)(nil)

type repoMock struct {
	posts  map[int]*Post
	nextId int
	mutex  sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		posts:  make(map[int]*Post),
		nextId: 1,
	}
}

func (r *repoMock) PostsCount() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.posts)
}

func (r *repoMock) Add(_ context.Context, post *Post) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	post.Id = r.nextId
	r.nextId++

	r.posts[post.Id] = post
	return nil
}

func (r *repoMock) Get(_ context.Context, id int) (*Post, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.posts[id]; !ok {
		return ErrPostNotFound
	}

	delete(r.posts, id)
	return nil
}

func (r *repoMock) List(_ context.Context, filter Filter) ([]*Post, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var postsList []*Post
	for _, post := range r.posts {
		if filter.Matches(post) {
			postsList = append(postsList, post)
		}
	}

	// id ascending, same order as the psql repo
	sort.Slice(postsList, func(i, j int) bool {
		return postsList[i].Id < postsList[j].Id
	})

	return postsList, nil
}
