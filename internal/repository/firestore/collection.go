package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ToFirestoreFunc[T any] func(*T) map[string]interface{}
type FromFirestoreFunc[T any] func(id string, m map[string]interface{}) *T

// Collection pairs a collection reference with the converters for its
// documents.
type Collection[T any] struct {
	Ref           *firestore.CollectionRef
	ToFirestore   ToFirestoreFunc[T]
	FromFirestore FromFirestoreFunc[T]
}

func (c *Collection[T]) Doc(id string) *DocumentRef[T] {
	return &DocumentRef[T]{
		Ref:           c.Ref.Doc(id),
		ToFirestore:   c.ToFirestore,
		FromFirestore: c.FromFirestore,
	}
}

// All runs q (which must be built from c.Ref) and decodes every document.
func (c *Collection[T]) All(ctx context.Context, q firestore.Query) ([]T, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(snaps))
	for _, snap := range snaps {
		items = append(items, *c.FromFirestore(snap.Ref.ID, snap.Data()))
	}
	return items, nil
}

type DocumentRef[T any] struct {
	Ref           *firestore.DocumentRef
	ToFirestore   ToFirestoreFunc[T]
	FromFirestore FromFirestoreFunc[T]
}

func (d *DocumentRef[T]) Get(ctx context.Context) (*T, error) {
	snap, err := d.Ref.Get(ctx)
	if err != nil {
		return nil, err
	}
	return d.FromFirestore(d.Ref.ID, snap.Data()), nil
}

// Set merges data into the document, creating it when missing.
func (d *DocumentRef[T]) Set(ctx context.Context, data *T) error {
	_, err := d.Ref.Set(ctx, d.ToFirestore(data), firestore.MergeAll)
	return err
}

func (d *DocumentRef[T]) Merge(ctx context.Context, fields map[string]interface{}) error {
	_, err := d.Ref.Set(ctx, fields, firestore.MergeAll)
	return err
}

// Delete removes the document and reports whether it existed.
func (d *DocumentRef[T]) Delete(ctx context.Context) (bool, error) {
	_, err := d.Ref.Delete(ctx, firestore.Exists)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
