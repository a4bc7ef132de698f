package adapter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/traPtitech/oidp/model"
	"github.com/traPtitech/oidp/utils/random"
)

// clock テストから進められる時計
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Now()}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestStore_UpsertFind(t *testing.T) {
	t.Parallel()

	for name, f := range setupFactories(t, nil) {
		f := f
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert, require := assertAndRequire(t)

			store := mustStore(t, f, model.KindAccessToken)
			id := random.SecureAlphaNumeric(32)
			payload := model.Payload{
				"jti":       id,
				"grantId":   "g-" + random.AlphaNumeric(10),
				"accountId": "u1",
				"scope":     "openid profile",
			}
			require.NoError(store.Upsert(id, payload, 600))

			got, err := store.Find(id)
			require.NoError(err)
			assert.Equal(payload, got)

			// 未知のidは空の結果
			missing, err := store.Find(random.SecureAlphaNumeric(32))
			require.NoError(err)
			assert.Nil(missing)
		})
	}
}

func TestStore_UpsertOverwrites(t *testing.T) {
	t.Parallel()

	for name, f := range setupFactories(t, nil) {
		f := f
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert, require := assertAndRequire(t)

			store := mustStore(t, f, model.KindRefreshToken)
			id := random.SecureAlphaNumeric(32)

			first := model.Payload{"jti": "first"}
			second := model.Payload{"jti": "second", "accountId": "u2"}
			require.NoError(store.Upsert(id, first, 600))
			require.NoError(store.Upsert(id, second, 600))

			got, err := store.Find(id)
			require.NoError(err)
			assert.Equal(second, got)
		})
	}
}

func TestStore_ConcurrentUpsert(t *testing.T) {
	t.Parallel()

	for name, f := range setupFactories(t, nil) {
		f := f
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert, require := assertAndRequire(t)

			store := mustStore(t, f, model.KindAccessToken)
			id := random.SecureAlphaNumeric(32)

			a := model.Payload{"jti": "a"}
			b := model.Payload{"jti": "b"}

			var wg sync.WaitGroup
			errs := make([]error, 2)
			for i, p := range []model.Payload{a, b} {
				i, p := i, p
				wg.Add(1)
				go func() {
					defer wg.Done()
					errs[i] = store.Upsert(id, p, 600)
				}()
			}
			wg.Wait()
			require.NoError(errs[0])
			require.NoError(errs[1])

			// どちらか一方のペイロードだけが残り、混ざった行にはならない
			got, err := store.Find(id)
			require.NoError(err)
			if assert.NotNil(got) {
				assert.Contains([]string{"a", "b"}, got.StringField("jti"))
				assert.Len(got, 1)
			}
		})
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	t.Parallel()

	c := newClock()
	for name, f := range setupFactories(t, c.Now) {
		f := f
		t.Run(name, func(t *testing.T) {
			assert, require := assertAndRequire(t)

			store := mustStore(t, f, model.KindAccessToken)
			id := "tok1-" + random.SecureAlphaNumeric(16)
			payload := model.Payload{"grantId": "g1", "sub": "u1"}
			require.NoError(store.Upsert(id, payload, 600))

			got, err := store.Find(id)
			require.NoError(err)
			assert.Equal(payload, got)

			c.Advance(601 * time.Second)

			got, err = store.Find(id)
			require.NoError(err)
			assert.Nil(got)
		})
	}
}

func TestStore_PayloadEmbeddedExpiry(t *testing.T) {
	t.Parallel()

	c := newClock()
	for name, f := range setupFactories(t, c.Now) {
		f := f
		t.Run(name, func(t *testing.T) {
			assert, require := assertAndRequire(t)

			// 行の有効期限は無期限だがペイロード自身のexpが切れているケース
			store := mustStore(t, f, model.KindInteraction)
			id := random.SecureAlphaNumeric(32)
			payload := model.Payload{"exp": float64(c.Now().Add(300 * time.Second).Unix())}
			require.NoError(store.Upsert(id, payload, 0))

			got, err := store.Find(id)
			require.NoError(err)
			assert.NotNil(got)

			c.Advance(301 * time.Second)

			got, err = store.Find(id)
			require.NoError(err)
			assert.Nil(got)
		})
	}
}

func TestStore_Destroy(t *testing.T) {
	t.Parallel()

	for name, f := range setupFactories(t, nil) {
		f := f
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert, require := assertAndRequire(t)

			store := mustStore(t, f, model.KindAuthorizationCode)
			id := random.SecureAlphaNumeric(32)
			require.NoError(store.Upsert(id, model.Payload{"jti": id}, 600))

			require.NoError(store.Destroy(id))

			got, err := store.Find(id)
			require.NoError(err)
			assert.Nil(got)

			// 二重destroyはエラーにならない
			assert.NoError(store.Destroy(id))
			assert.NoError(store.Destroy(random.SecureAlphaNumeric(32)))
		})
	}
}

func TestStore_Consume(t *testing.T) {
	t.Parallel()

	for name, f := range setupFactories(t, nil) {
		f := f
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert, require := assertAndRequire(t)

			store := mustStore(t, f, model.KindAuthorizationCode)
			id := random.SecureAlphaNumeric(32)
			require.NoError(store.Upsert(id, model.Payload{"jti": id}, 600))

			require.NoError(store.Consume(id))

			got, err := store.Find(id)
			require.NoError(err)
			if assert.NotNil(got) {
				assert.NotZero(got.Consumed())
			}

			// 存在しないidの消費は何もしない
			assert.NoError(store.Consume(random.SecureAlphaNumeric(32)))
		})
	}
}

func TestStore_RevokeByGrantID(t *testing.T) {
	t.Parallel()

	mustMakeClient(t, "revoke_client")
	for name, f := range setupFactories(t, nil) {
		f := f
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert, require := assertAndRequire(t)

			grants := mustStore(t, f, model.KindGrant)
			tokens := mustStore(t, f, model.KindAccessToken)

			g1 := "g-" + random.AlphaNumeric(16)
			g2 := "g-" + random.AlphaNumeric(16)
			require.NoError(grants.Upsert(g1, model.Payload{"clientId": "revoke_client", "accountId": "u1"}, 0))
			require.NoError(grants.Upsert(g2, model.Payload{"clientId": "revoke_client", "accountId": "u2"}, 0))

			t1 := random.SecureAlphaNumeric(32)
			t2 := random.SecureAlphaNumeric(32)
			other := random.SecureAlphaNumeric(32)
			require.NoError(tokens.Upsert(t1, model.Payload{"grantId": g1}, 600))
			require.NoError(tokens.Upsert(t2, model.Payload{"grantId": g1}, 600))
			require.NoError(tokens.Upsert(other, model.Payload{"grantId": g2}, 600))

			require.NoError(tokens.RevokeByGrantID(g1))

			for _, id := range []string{t1, t2} {
				got, err := tokens.Find(id)
				require.NoError(err)
				assert.Nil(got)
			}
			got, err := tokens.Find(other)
			require.NoError(err)
			assert.NotNil(got)

			// 再実行もエラーにならない
			assert.NoError(tokens.RevokeByGrantID(g1))
		})
	}
}

func TestStore_GrantLifecycle(t *testing.T) {
	t.Parallel()

	mustMakeClient(t, "grant_client")
	for name, f := range setupFactories(t, nil) {
		f := f
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert, require := assertAndRequire(t)

			grants := mustStore(t, f, model.KindGrant)
			id := "g-" + random.AlphaNumeric(16)

			require.NoError(grants.Upsert(id, model.Payload{
				"clientId":  "grant_client",
				"accountId": "u1",
				"scope":     "openid email",
			}, 0))
			require.NoError(grants.Upsert(id, model.Payload{
				"clientId":  "grant_client",
				"accountId": "u1",
				"scope":     "openid profile",
			}, 0))

			got, err := grants.Find(id)
			require.NoError(err)
			if assert.NotNil(got) {
				assert.Equal(model.AccessScopes{"openid", "profile"}, got.Scopes())
			}

			require.NoError(grants.Destroy(id))
			got, err = grants.Find(id)
			require.NoError(err)
			assert.Nil(got)
		})
	}
}

func TestRelationalStore_GrantReferenceNotFound(t *testing.T) {
	t.Parallel()
	assert, require := assertAndRequire(t)

	f := NewRelationalFactory(repositories[relational], zap.NewNop())
	grants, err := f.Store(string(model.KindGrant))
	require.NoError(err)

	err = grants.Upsert("g-missing-"+random.AlphaNumeric(8), model.Payload{
		"clientId":  "admin_client_missing",
		"accountId": "u1",
		"scope":     "openid email",
	}, 0)
	assert.ErrorIs(err, ErrReferenceNotFound)
}

func TestStore_SessionUIDFallback(t *testing.T) {
	t.Parallel()

	for name, f := range setupFactories(t, nil) {
		f := f
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert, require := assertAndRequire(t)

			sessions := mustStore(t, f, model.KindSession)
			id := random.SecureAlphaNumeric(32)
			uid := random.SecureAlphaNumeric(32)
			payload := model.Payload{"uid": uid, "accountId": "u1"}
			require.NoError(sessions.Upsert(id, payload, 3600))

			// 主キーでもuidでも同じセッションが引ける
			got, err := sessions.Find(id)
			require.NoError(err)
			assert.Equal(payload, got)

			got, err = sessions.Find(uid)
			require.NoError(err)
			assert.Equal(payload, got)

			got, err = sessions.FindByUID(uid)
			require.NoError(err)
			assert.Equal(payload, got)
		})
	}
}

func TestStore_FindByUserCode(t *testing.T) {
	t.Parallel()

	for name, f := range setupFactories(t, nil) {
		f := f
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert, require := assertAndRequire(t)

			devices := mustStore(t, f, model.KindDeviceCode)
			id := random.SecureAlphaNumeric(32)
			userCode := random.AlphaNumeric(8)
			payload := model.Payload{"userCode": userCode, "accountId": "u1"}
			require.NoError(devices.Upsert(id, payload, 600))

			got, err := devices.FindByUserCode(userCode)
			require.NoError(err)
			assert.Equal(payload, got)

			missing, err := devices.FindByUserCode(random.AlphaNumeric(8))
			require.NoError(err)
			assert.Nil(missing)
		})
	}
}

func TestFactory_UnknownKind(t *testing.T) {
	t.Parallel()

	for name, f := range setupFactories(t, nil) {
		f := f
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert := assert.New(t)

			_, err := f.Store("Bogus")
			assert.Error(err)
		})
	}
}
