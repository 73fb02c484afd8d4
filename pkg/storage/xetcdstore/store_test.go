package xetcdstore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/etcd/api/v3/mvccpb"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// fakeKV 是内存版 KV 实现，覆盖后端用到的 Get/Put/Delete 语义。
// 仅支持 WithPrefix 和 WithKeysOnly 两个选项，与 Store 的用法一致。
type fakeKV struct {
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(_ context.Context, key string, opts ...clientv3.OpOption) (*clientv3.GetResponse, error) {
	resp := &clientv3.GetResponse{}
	if clientv3.IsOptsWithPrefix(opts) {
		for k, v := range f.data {
			if strings.HasPrefix(k, key) {
				resp.Kvs = append(resp.Kvs, &mvccpb.KeyValue{
					Key:   []byte(k),
					Value: []byte(v),
				})
			}
		}
		return resp, nil
	}

	if v, ok := f.data[key]; ok {
		resp.Kvs = append(resp.Kvs, &mvccpb.KeyValue{
			Key:   []byte(key),
			Value: []byte(v),
		})
	}
	return resp, nil
}

func (f *fakeKV) Put(_ context.Context, key, val string, _ ...clientv3.OpOption) (*clientv3.PutResponse, error) {
	f.data[key] = val
	return &clientv3.PutResponse{}, nil
}

func (f *fakeKV) Delete(_ context.Context, key string, _ ...clientv3.OpOption) (*clientv3.DeleteResponse, error) {
	delete(f.data, key)
	return &clientv3.DeleteResponse{}, nil
}

func TestNew_NilClient_Error(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilClient)
}

func TestNew_DefaultPrefix(t *testing.T) {
	s, err := New(newFakeKV())
	require.NoError(t, err)
	assert.Equal(t, DefaultPrefix, s.Prefix())
}

func TestWithPrefix_TrailingSlashAdded(t *testing.T) {
	s, err := New(newFakeKV(), WithPrefix("/myapp/conf"))
	require.NoError(t, err)
	assert.Equal(t, "/myapp/conf/", s.Prefix())
}

func TestRead_MissingKey_NotAnError(t *testing.T) {
	s, err := New(newFakeKV())
	require.NoError(t, err)

	raw, ok, err := s.Read(testContext(t), "Greeting")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, raw)
}

func TestWrite_StoredUnderPrefix(t *testing.T) {
	kv := newFakeKV()
	s, err := New(kv, WithPrefix("/app/"))
	require.NoError(t, err)

	require.NoError(t, s.Write(testContext(t), "Greeting", "hello"))
	assert.Equal(t, "hello", kv.data["/app/Greeting"])

	raw, ok, err := s.Read(testContext(t), "Greeting")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", raw)
}

func TestDelete_Idempotent(t *testing.T) {
	s, err := New(newFakeKV())
	require.NoError(t, err)

	require.NoError(t, s.Write(testContext(t), "A", "1"))
	require.NoError(t, s.Delete(testContext(t), "A"))
	require.NoError(t, s.Delete(testContext(t), "A"))

	_, ok, err := s.Read(testContext(t), "A")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKeys_StripsPrefix(t *testing.T) {
	kv := newFakeKV()
	s, err := New(kv, WithPrefix("/app/"))
	require.NoError(t, err)

	require.NoError(t, s.Write(testContext(t), "A", "1"))
	require.NoError(t, s.Write(testContext(t), "B", "2"))

	// 前缀之外的键不可见。
	kv.data["/other/C"] = "3"

	keys, err := s.Keys(testContext(t))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "B"}, keys)
}
