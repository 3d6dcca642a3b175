package nakama

import (
	"context"
	"fmt"
	"sync"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

type storedObject struct {
	value   string
	version string
}

// fakeNakama implements the parts of runtime.NakamaModule the adapters use.
// Calling anything else panics on the nil embedded interface.
type fakeNakama struct {
	runtime.NakamaModule

	mu       sync.Mutex
	objects  map[string]storedObject
	writes   int
	accounts map[string]*api.User
	// beforeWrite runs once, outside the lock, before the next StorageWrite.
	beforeWrite func()
}

func newFakeNakama() *fakeNakama {
	return &fakeNakama{
		objects:  make(map[string]storedObject),
		accounts: make(map[string]*api.User),
	}
}

func objectKey(collection, key, userID string) string {
	return collection + "/" + key + "/" + userID
}

func (f *fakeNakama) StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*api.StorageObject
	for _, r := range reads {
		obj, ok := f.objects[objectKey(r.Collection, r.Key, r.UserID)]
		if !ok {
			continue
		}
		out = append(out, &api.StorageObject{
			Collection: r.Collection,
			Key:        r.Key,
			UserId:     r.UserID,
			Value:      obj.value,
			Version:    obj.version,
		})
	}
	return out, nil
}

func (f *fakeNakama) StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error) {
	if hook := f.beforeWrite; hook != nil {
		f.beforeWrite = nil
		hook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range writes {
		current, exists := f.objects[objectKey(w.Collection, w.Key, w.UserID)]
		switch {
		case w.Version == "*" && exists:
			return nil, runtime.ErrStorageRejectedVersion
		case w.Version != "" && w.Version != "*" && (!exists || current.version != w.Version):
			return nil, runtime.ErrStorageRejectedVersion
		}
	}
	var acks []*api.StorageObjectAck
	for _, w := range writes {
		f.writes++
		version := fmt.Sprintf("v%d", f.writes)
		f.objects[objectKey(w.Collection, w.Key, w.UserID)] = storedObject{value: w.Value, version: version}
		acks = append(acks, &api.StorageObjectAck{Collection: w.Collection, Key: w.Key, UserId: w.UserID, Version: version})
	}
	return acks, nil
}

func (f *fakeNakama) AccountGetId(ctx context.Context, userID string) (*api.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.accounts[userID]
	if !ok {
		return nil, fmt.Errorf("account %s not found", userID)
	}
	return &api.Account{User: &api.User{Id: user.Id, Username: user.Username, DisplayName: user.DisplayName}}, nil
}

func (f *fakeNakama) AccountUpdateId(ctx context.Context, userID, username string, metadata map[string]interface{}, displayName, timezone, location, langTag, avatarUrl string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.accounts[userID]
	if !ok {
		return fmt.Errorf("account %s not found", userID)
	}
	if username != "" {
		user.Username = username
	}
	if displayName != "" {
		user.DisplayName = displayName
	}
	return nil
}

func (f *fakeNakama) addAccount(userID, username, displayName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[userID] = &api.User{Id: userID, Username: username, DisplayName: displayName}
}

// userContext is the context Nakama passes to RPCs made with a session.
func userContext(userID, username string) context.Context {
	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, userID)
	return context.WithValue(ctx, runtime.RUNTIME_CTX_USERNAME, username)
}
