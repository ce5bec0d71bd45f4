package login

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/authshell/internal/services/web/flow"
	"github.com/louisbranch/authshell/internal/services/web/localeroute"
	module "github.com/louisbranch/authshell/internal/services/web/module"
	"github.com/louisbranch/authshell/internal/services/web/platform/pagerender"
	"github.com/louisbranch/authshell/internal/services/web/platform/ratelimit"
	"github.com/louisbranch/authshell/internal/services/web/platform/theme"
	"golang.org/x/text/language"
)

func testDeps(t *testing.T) module.Dependencies {
	t.Helper()
	store, err := flow.NewStore(bytes.Repeat([]byte("h"), 32), bytes.Repeat([]byte("b"), 32), "/")
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	routing := localeroute.Routing{Default: language.Persian}
	return module.Dependencies{
		Routing: routing,
		Pages:   pagerender.Renderer{Routing: routing, Enamad: "64790285"},
		Flow:    store,
	}
}

func mountHandler(t *testing.T, deps module.Dependencies) http.Handler {
	t.Helper()
	mount, err := New().Mount(deps)
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return mount.Handler
}

// browser replays cookies between requests.
type browser struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, handler http.Handler) *browser {
	return &browser{t: t, handler: handler, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	b.handler.ServeHTTP(rr, req)
	for _, c := range rr.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return rr
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestModuleIDReturnsLogin(t *testing.T) {
	t.Parallel()

	if got := New().ID(); got != "login" {
		t.Fatalf("ID() = %q, want %q", got, "login")
	}
}

func TestMountRequiresFlowStore(t *testing.T) {
	t.Parallel()

	if _, err := New().Mount(module.Dependencies{}); err == nil {
		t.Fatal("expected error without flow store")
	}
}

func TestLoginPageRendersEachLocale(t *testing.T) {
	t.Parallel()

	h := mountHandler(t, testDeps(t))
	tests := []struct {
		path    string
		lang    string
		dir     string
		welcome string
	}{
		{path: "/fa/login", lang: "fa", dir: "rtl", welcome: "خوش آمدید"},
		{path: "/en/login", lang: "en", dir: "ltr", welcome: "Welcome"},
		{path: "/ar/login", lang: "ar", dir: "rtl", welcome: "مرحبا"},
	}
	for _, tc := range tests {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status = %d, want 200", tc.path, rr.Code)
		}
		assertContains(t, rr.Body.String(),
			`<html lang="`+tc.lang+`" dir="`+tc.dir+`"`,
			tc.welcome,
			`action="/`+tc.lang+`/login"`,
			`name="identifier" type="email"`,
		)
	}
}

func TestLoginPageLanguageSwitcherKeepsPath(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	mountHandler(t, testDeps(t)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/en/login", nil))
	assertContains(t, rr.Body.String(),
		`href="/fa/login"`,
		`href="/ar/login"`,
		`href="/en/login" hreflang="en" lang="en" aria-current="page"`,
		"فارسی",
		"العربية",
	)
}

func TestLoginPageThemeToggle(t *testing.T) {
	t.Parallel()

	b := newBrowser(t, mountHandler(t, testDeps(t)))
	dark := b.get("/en/login?theme=dark")
	assertContains(t, dark.Body.String(), "theme-dark", `href="/en/login?theme=light"`, ">Light<")
	if b.cookies[theme.CookieName] == nil {
		t.Fatal("theme cookie not set")
	}

	again := b.get("/en/login")
	assertContains(t, again.Body.String(), "theme-dark")

	light := b.get("/en/login?theme=light")
	assertContains(t, light.Body.String(), "theme-light", `href="/en/login?theme=dark"`, ">Dark<")
}

func TestUnknownLocaleAndPathsRenderNotFound(t *testing.T) {
	t.Parallel()

	h := mountHandler(t, testDeps(t))
	for _, path := range []string{"/de/login", "/fa/missing", "/EN/login"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s status = %d, want 404", path, rr.Code)
		}
	}
}

func TestLocaleIndexRedirectsToLogin(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	mountHandler(t, testDeps(t)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ar/", nil))
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rr.Code)
	}
	if got := rr.Header().Get("Location"); got != "/ar/login" {
		t.Fatalf("Location = %q, want /ar/login", got)
	}
}

func TestLoginRejectsOtherMethods(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	mountHandler(t, testDeps(t)).ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/fa/login", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
}

func TestSubmitEmptyIdentifierShowsError(t *testing.T) {
	t.Parallel()

	b := newBrowser(t, mountHandler(t, testDeps(t)))
	rr := b.post("/en/login", url.Values{"action": {"continue"}, "identifier": {"   "}})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rr.Code)
	}
	assertContains(t, rr.Body.String(), "Please enter your email or phone number", `name="identifier"`)
}

func TestFullCodeFlow(t *testing.T) {
	t.Parallel()

	b := newBrowser(t, mountHandler(t, testDeps(t)))

	sent := b.post("/en/login", url.Values{"action": {"continue"}, "identifier": {"a@b.co"}})
	if sent.Code != http.StatusOK {
		t.Fatalf("identify status = %d, want 200", sent.Code)
	}
	assertContains(t, sent.Body.String(), `name="code"`, "We sent a 6-digit code")
	if b.cookies[flow.CookieName] == nil {
		t.Fatal("flow cookie not set after identify")
	}

	reload := b.get("/en/login")
	assertContains(t, reload.Body.String(), `name="code"`)

	short := b.post("/en/login", url.Values{"action": {"continue"}, "code": {"12345"}})
	if short.Code != http.StatusUnprocessableEntity {
		t.Fatalf("short code status = %d, want 422", short.Code)
	}
	assertContains(t, short.Body.String(), "The code must be 6 digits", `value="12345"`)

	ok := b.post("/en/login", url.Values{"action": {"continue"}, "code": {"123-456"}})
	if ok.Code != http.StatusOK {
		t.Fatalf("verify status = %d, want 200", ok.Code)
	}
	assertContains(t, ok.Body.String(), "Signed in successfully!", `name="identifier"`)
	if b.cookies[flow.CookieName] != nil {
		t.Fatal("flow cookie should be cleared after success")
	}
}

func TestIdentifierLengthBoundary(t *testing.T) {
	t.Parallel()

	longest := strings.Repeat("a", flow.MaxIdentifierLength-6) + "@b.com"

	b := newBrowser(t, mountHandler(t, testDeps(t)))
	tooLong := b.post("/en/login", url.Values{"action": {"continue"}, "identifier": {"a" + longest}})
	if tooLong.Code != http.StatusUnprocessableEntity {
		t.Fatalf("too long status = %d, want 422", tooLong.Code)
	}
	assertContains(t, tooLong.Body.String(), "That email or phone number is too long", `name="identifier"`)
	if strings.Contains(tooLong.Body.String(), `name="code"`) {
		t.Fatal("too long identifier advanced to the code step")
	}

	sent := b.post("/en/login", url.Values{"action": {"continue"}, "identifier": {longest}})
	if sent.Code != http.StatusOK {
		t.Fatalf("identify status = %d, want 200", sent.Code)
	}
	assertContains(t, sent.Body.String(), `name="code"`)

	ok := b.post("/en/login", url.Values{"action": {"continue"}, "code": {"123456"}})
	if ok.Code != http.StatusOK {
		t.Fatalf("verify status = %d, want 200", ok.Code)
	}
	assertContains(t, ok.Body.String(), "Signed in successfully!")
}

func TestMethodSwitchLockedWhileVerifying(t *testing.T) {
	t.Parallel()

	b := newBrowser(t, mountHandler(t, testDeps(t)))

	phone := b.post("/en/login", url.Values{"action": {"method"}, "method": {"phone"}})
	assertContains(t, phone.Body.String(), `name="identifier" type="tel"`, `value="&#43;98"`)

	b.post("/en/login", url.Values{"action": {"continue"}, "identifier": {"0912 000 1122"}})
	locked := b.post("/en/login", url.Values{"action": {"method"}, "method": {"email"}})
	if locked.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", locked.Code)
	}
	assertContains(t, locked.Body.String(), `name="code"`)

	back := b.post("/en/login", url.Values{"action": {"reset"}})
	assertContains(t, back.Body.String(), `name="identifier" type="tel"`, `value="09120001122"`)
}

func TestSocialGoogleAndGuestNotices(t *testing.T) {
	t.Parallel()

	b := newBrowser(t, mountHandler(t, testDeps(t)))
	tests := []struct {
		form url.Values
		want string
	}{
		{form: url.Values{"action": {"google"}}, want: "Signing in with Google"},
		{form: url.Values{"action": {"social"}, "provider": {"Github"}}, want: "Signing in with Github"},
		{form: url.Values{"action": {"guest"}}, want: "Signed in as guest"},
	}
	for _, tc := range tests {
		rr := b.post("/en/login", tc.form)
		if rr.Code != http.StatusOK {
			t.Fatalf("%v status = %d, want 200", tc.form, rr.Code)
		}
		assertContains(t, rr.Body.String(), `role="status">`+tc.want)
	}

	fa := b.post("/fa/login", url.Values{"action": {"guest"}})
	assertContains(t, fa.Body.String(), "ورود مهمان")
}

func TestSubmitRejectsBadInput(t *testing.T) {
	t.Parallel()

	b := newBrowser(t, mountHandler(t, testDeps(t)))
	for _, form := range []url.Values{
		{"action": {"social"}, "provider": {"Myspace"}},
		{"action": {"teleport"}},
		{"action": {"method"}, "method": {"pager"}},
	} {
		if rr := b.post("/en/login", form); rr.Code != http.StatusBadRequest {
			t.Fatalf("%v status = %d, want 400", form, rr.Code)
		}
	}
}

func TestSubmitRejectsForeignOrigin(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "http://example.com/en/login", strings.NewReader("action=guest"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "http://evil.test")
	rr := httptest.NewRecorder()
	mountHandler(t, testDeps(t)).ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rr.Code)
	}
}

func TestSendCodeRateLimited(t *testing.T) {
	t.Parallel()

	deps := testDeps(t)
	limiter := ratelimit.New(time.Minute, 1)
	t.Cleanup(limiter.Close)
	deps.SendCodeLimiter = limiter
	h := mountHandler(t, deps)

	first := newBrowser(t, h).post("/en/login", url.Values{"action": {"continue"}, "identifier": {"a@b.co"}})
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d, want 200", first.Code)
	}
	second := newBrowser(t, h).post("/en/login", url.Values{"action": {"continue"}, "identifier": {"c@d.co"}})
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want 429", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After header")
	}
	assertContains(t, second.Body.String(), "Too many attempts", `name="identifier"`)
}
