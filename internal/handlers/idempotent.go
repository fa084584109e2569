package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/go-restaurant-orders/internal/idempotency"
)

const idempotencyHeader = "Idempotency-Key"

// created is the result of a successful create: the new id, its Location and
// the 201 body.
type created struct {
	ID       string
	Location string
	Body     gin.H
}

// createOnce runs create at most once per Idempotency-Key and scope.
// Without a key, or without an idempotency table, create simply runs.
// A finished request is replayed byte for byte, one still in flight gets 202,
// and a failed one may be retried with the same key.
func createOnce(c *gin.Context, store *idempotency.Store, scope string, create func(ctx context.Context) (*created, error), fail func(error)) {
	ctx := c.Request.Context()
	key := c.GetHeader(idempotencyHeader)
	if store == nil || key == "" {
		res, err := create(ctx)
		if err != nil {
			fail(err)
			return
		}
		c.Header("Location", res.Location)
		c.JSON(http.StatusCreated, res.Body)
		return
	}

	first, err := store.CreateIfNotExists(ctx, scope, key, "")
	if err != nil {
		log.Printf("[idempotency] create %s/%s: %v", scope, key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "idempotency check failed"})
		return
	}
	if !first && !replay(c, store, scope, key) {
		return
	}

	res, err := create(ctx)
	if err != nil {
		if mErr := store.MarkFailed(ctx, scope, key, err.Error()); mErr != nil {
			log.Printf("[idempotency] mark failed %s/%s: %v", scope, key, mErr)
		}
		fail(err)
		return
	}

	body, err := json.Marshal(res.Body)
	if err != nil {
		fail(fmt.Errorf("marshal response: %w", err))
		return
	}
	if err := store.MarkDone(ctx, scope, key, res.ID, string(body), http.StatusCreated); err != nil {
		// the order or reservation exists, so the 201 still goes out
		log.Printf("[idempotency] mark done %s/%s: %v", scope, key, err)
	}
	c.Header("Location", res.Location)
	c.Data(http.StatusCreated, "application/json; charset=utf-8", body)
}

// replay answers a request whose key was seen before. It returns true when
// the caller should go ahead and create, which only happens after a failure.
func replay(c *gin.Context, store *idempotency.Store, scope, key string) bool {
	ctx := c.Request.Context()
	rec, err := store.Get(ctx, scope, key)
	if err != nil {
		log.Printf("[idempotency] get %s/%s: %v", scope, key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "idempotency check failed"})
		return false
	}
	if rec == nil {
		// expired between the conditional put and the read
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "idempotency key expired, retry the request"})
		return false
	}

	switch rec.Status {
	case idempotency.StatusDone:
		status := rec.ResponseStatus
		if status == 0 {
			status = http.StatusCreated
		}
		c.Data(status, "application/json; charset=utf-8", []byte(rec.ResponseBody))
		return false
	case idempotency.StatusFailed:
		ok, err := store.Retry(ctx, scope, key, "")
		if err != nil {
			log.Printf("[idempotency] retry %s/%s: %v", scope, key, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "idempotency check failed"})
			return false
		}
		if ok {
			return true
		}
	}
	c.JSON(http.StatusAccepted, gin.H{"success": true, "message": "request already in progress"})
	return false
}
