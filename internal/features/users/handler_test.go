package users

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourplaces/backend/internal/middleware"
	"github.com/yourplaces/backend/internal/pkg/token"
)

// fakeUsers is an in-memory Store.
type fakeUsers struct {
	mu         sync.Mutex
	byEmail    map[string]*User
	failCreate bool
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*User{}}
}

func (f *fakeUsers) List(ctx context.Context) ([]User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []User{}
	for _, u := range f.byEmail {
		copied := *u
		copied.Password = ""
		list = append(list, copied)
	}
	return list, nil
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byEmail[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeUsers) Create(ctx context.Context, user *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return context.DeadlineExceeded
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return ErrDuplicateEmail
	}
	user.ID = primitive.NewObjectID()
	if user.Places == nil {
		user.Places = []primitive.ObjectID{}
	}
	copied := *user
	f.byEmail[user.Email] = &copied
	return nil
}

type nullBlobStore struct {
	removed []string
}

func (s *nullBlobStore) Save(ctx context.Context, file multipart.File, name string) (string, error) {
	io.Copy(io.Discard, file)
	return "uploads/images/" + name, nil
}

func (s *nullBlobStore) Remove(ctx context.Context, path string) error {
	s.removed = append(s.removed, path)
	return nil
}

func newTestRouter(store *fakeUsers) (*gin.Engine, *token.Manager, *nullBlobStore) {
	gin.SetMode(gin.TestMode)
	tokens := token.NewManager("test-secret", 1)
	blobs := &nullBlobStore{}

	r := gin.New()
	r.Use(middleware.ErrorHandler(blobs))
	RegisterRoutes(r.Group("/api"), NewHandler(store, tokens), blobs)
	return r, tokens, blobs
}

func signupForm(t *testing.T, name, email, password string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	require.NoError(t, mw.WriteField("name", name))
	require.NoError(t, mw.WriteField("email", email))
	require.NoError(t, mw.WriteField("password", password))

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="me.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)

	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func doSignup(t *testing.T, r *gin.Engine, name, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := signupForm(t, name, email, password)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/users/signup", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)
	return w
}

func doLogin(t *testing.T, r *gin.Engine, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/users/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSignupIssuesVerifiableToken(t *testing.T) {
	store := newFakeUsers()
	r, tokens, _ := newTestRouter(store)

	w := doSignup(t, r, "Al", "al@x.com", "secret1")
	require.Equal(t, 201, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "al@x.com", resp.Email)
	require.NotEmpty(t, resp.UserID)
	require.NotEmpty(t, resp.Token)

	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.UserID, claims.UserID)
	require.Equal(t, "al@x.com", claims.Email)

	// Raw password is never persisted, only a bcrypt hash.
	stored := store.byEmail["al@x.com"]
	require.NotEqual(t, "secret1", stored.Password)
	require.True(t, strings.HasPrefix(stored.Password, "$2a$12$"))
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1")))
	require.Equal(t, "uploads/images/me.png", stored.Image)
}

func TestSignupDuplicateEmailConflict(t *testing.T) {
	store := newFakeUsers()
	r, _, _ := newTestRouter(store)

	require.Equal(t, 201, doSignup(t, r, "Al", "al@x.com", "secret1").Code)
	originalHash := store.byEmail["al@x.com"].Password

	w := doSignup(t, r, "Impostor", "al@x.com", "different")
	require.Equal(t, 500, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "User exist already, please login instead.", body["message"])

	// The original user is untouched.
	require.Equal(t, originalHash, store.byEmail["al@x.com"].Password)
	require.Equal(t, "Al", store.byEmail["al@x.com"].Name)
}

func TestSignupValidation(t *testing.T) {
	store := newFakeUsers()
	r, _, _ := newTestRouter(store)

	cases := []struct {
		name, email, password string
	}{
		{"A", "al@x.com", "secret1"},   // name too short
		{"Al", "not-an-email", "ok123456"}, // bad email
		{"Al", "al@x.com", "short"},    // password too short
	}

	for _, tc := range cases {
		w := doSignup(t, r, tc.name, tc.email, tc.password)
		require.Equal(t, 422, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, "Invalid inputs passed, please check your data.", body["message"])
	}
	require.Empty(t, store.byEmail)
}

func TestSignupFailureCleansUpUpload(t *testing.T) {
	store := newFakeUsers()
	store.failCreate = true
	r, _, blobs := newTestRouter(store)

	w := doSignup(t, r, "Al", "al@x.com", "secret1")
	require.Equal(t, 500, w.Code)
	require.Len(t, blobs.removed, 1, "uncommitted upload must be deleted")
}

func TestLoginRoundTrip(t *testing.T) {
	store := newFakeUsers()
	r, tokens, _ := newTestRouter(store)

	require.Equal(t, 201, doSignup(t, r, "Al", "al@x.com", "secret1").Code)

	w := doLogin(t, r, "al@x.com", "secret1")
	require.Equal(t, 200, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	require.Equal(t, store.byEmail["al@x.com"].ID.Hex(), claims.UserID)
	require.Equal(t, "al@x.com", claims.Email)
}

func TestLoginGenericFailureMessage(t *testing.T) {
	store := newFakeUsers()
	r, _, _ := newTestRouter(store)

	require.Equal(t, 201, doSignup(t, r, "Al", "al@x.com", "secret1").Code)

	// Wrong password and unknown email must be indistinguishable.
	wrongPassword := doLogin(t, r, "al@x.com", "wrong-pass")
	unknownEmail := doLogin(t, r, "nobody@x.com", "secret1")

	require.Equal(t, 403, wrongPassword.Code)
	require.Equal(t, 403, unknownEmail.Code)
	require.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())

	var body map[string]string
	require.NoError(t, json.Unmarshal(wrongPassword.Body.Bytes(), &body))
	require.Equal(t, "Email or password is invalid, please try again!", body["message"])
}

func TestListExcludesPasswords(t *testing.T) {
	store := newFakeUsers()
	r, _, _ := newTestRouter(store)

	require.Equal(t, 201, doSignup(t, r, "Al", "al@x.com", "secret1").Code)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/users", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	require.NotContains(t, w.Body.String(), "password")
	require.NotContains(t, w.Body.String(), "$2a$")

	var body struct {
		Users []User `json:"users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Users, 1)
	require.Equal(t, "Al", body.Users[0].Name)
}
