package web

import "net/http"

// Stylesheet serves the single application stylesheet. It lives in a constant
// so the binary stays self-contained.
func (h *Handler) Stylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(appCSS))
}

const appCSS = `
:root {
  --bg: #0b0f1a;
  --surface: #131a2b;
  --border: #24304a;
  --text: #e8ecf5;
  --muted: #93a0b8;
  --primary: #6d5ef2;
  --primary-dark: #5646e0;
  --danger: #e25563;
  --success: #3dd68c;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  background: var(--bg);
  color: var(--text);
  font-family: "Inter", system-ui, -apple-system, sans-serif;
  line-height: 1.6;
}

a { color: var(--primary); text-decoration: none; }
a:hover { text-decoration: underline; }

.topbar {
  display: flex;
  align-items: center;
  gap: 2rem;
  padding: 1rem 2rem;
  border-bottom: 1px solid var(--border);
  background: var(--surface);
}

.brand { font-weight: 700; font-size: 1.25rem; color: var(--text); }
.brand:hover { text-decoration: none; }

.nav { display: flex; gap: 1.25rem; flex: 1; }
.nav a { color: var(--muted); }
.nav a.active, .nav a:hover { color: var(--text); text-decoration: none; }

.auth-controls { display: flex; gap: 0.75rem; align-items: center; }
.inline-form { display: inline; margin: 0; }

.layout { max-width: 72rem; margin: 0 auto; padding: 2.5rem 2rem; }

.footer {
  border-top: 1px solid var(--border);
  padding: 1.5rem 2rem;
  color: var(--muted);
  display: flex;
  justify-content: space-between;
  align-items: center;
}
.footer nav { display: flex; gap: 1rem; }
.footer a { color: var(--muted); }

.btn {
  display: inline-block;
  padding: 0.55rem 1.2rem;
  border-radius: 999px;
  border: 1px solid transparent;
  font: inherit;
  font-weight: 600;
  cursor: pointer;
}
.btn:hover { text-decoration: none; }
.btn-primary { background: var(--primary); color: #fff; }
.btn-primary:hover { background: var(--primary-dark); }
.btn-secondary { background: transparent; color: var(--text); border-color: var(--border); }
.btn-ghost { background: transparent; color: var(--muted); border: none; }
.btn-ghost:hover { color: var(--text); }
.btn-ghost.danger { color: var(--danger); }

.hero { padding: 3rem 0; }
.hero h1 { font-size: 2.75rem; line-height: 1.15; margin: 0 0 1rem; }
.lead { font-size: 1.2rem; color: var(--muted); max-width: 42rem; }
.cta-row { display: flex; gap: 1rem; margin-top: 1.5rem; flex-wrap: wrap; }

.stats { display: flex; gap: 2rem; flex-wrap: wrap; padding: 1.5rem 0; }
.stat { display: flex; flex-direction: column; }
.stat strong { font-size: 1.8rem; }

.grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(16rem, 1fr)); gap: 1.25rem; margin-top: 1.5rem; }

.card {
  background: var(--surface);
  border: 1px solid var(--border);
  border-radius: 0.9rem;
  padding: 1.5rem;
  margin-bottom: 1.25rem;
}
.card h2 { margin-top: 0; }
.card h3 { margin-top: 0; }

.plan.popular { border-color: var(--primary); position: relative; }
.badge {
  background: var(--primary);
  color: #fff;
  font-size: 0.75rem;
  padding: 0.2rem 0.7rem;
  border-radius: 999px;
}
.price strong { font-size: 2rem; }

.page-title { font-size: 2.2rem; margin-bottom: 0.5rem; }
.muted { color: var(--muted); }
.small { font-size: 0.85rem; }
.mono { font-family: ui-monospace, monospace; font-size: 0.85rem; }
.error {
  background: rgba(226, 85, 99, 0.12);
  border: 1px solid var(--danger);
  color: var(--danger);
  padding: 0.75rem 1rem;
  border-radius: 0.6rem;
}

.stacked-form { display: flex; flex-direction: column; gap: 0.5rem; }
.stacked-form label { font-weight: 600; margin-top: 0.5rem; }
.stacked-form input, .stacked-form textarea {
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: 0.6rem;
  color: var(--text);
  padding: 0.65rem 0.9rem;
  font: inherit;
}
.stacked-form input:focus, .stacked-form textarea:focus { outline: 2px solid var(--primary); }
.stacked-form .btn { margin-top: 1rem; }

.auth-wrap { max-width: 26rem; margin: 0 auto; }
.auth-head { text-align: center; margin-bottom: 1.5rem; }
.demo-hint { border-style: dashed; }

.profile { display: flex; align-items: center; gap: 1.25rem; }
.avatar { width: 4rem; height: 4rem; border-radius: 50%; object-fit: cover; }
.avatar-initial {
  display: flex;
  align-items: center;
  justify-content: center;
  background: var(--primary);
  color: #fff;
  font-size: 1.6rem;
  font-weight: 700;
}

.tiles { display: grid; grid-template-columns: repeat(auto-fit, minmax(12rem, 1fr)); gap: 1.25rem; }
.tile { display: flex; flex-direction: column; gap: 0.25rem; }
.status-active { color: var(--success); }

.activity { list-style: none; padding: 0; margin: 0; }
.activity li { display: flex; justify-content: space-between; padding: 0.5rem 0; border-bottom: 1px solid var(--border); }
.activity li:last-child { border-bottom: none; }

.table-wrap table { width: 100%; border-collapse: collapse; }
.table-wrap th { text-align: left; color: var(--muted); font-weight: 600; padding: 0.5rem 0.75rem; }
.table-wrap td { padding: 0.5rem 0.75rem; border-top: 1px solid var(--border); }

.loading { display: flex; flex-direction: column; align-items: center; padding-top: 6rem; gap: 1rem; }
.spinner {
  width: 2.5rem;
  height: 2.5rem;
  border: 3px solid var(--border);
  border-top-color: var(--primary);
  border-radius: 50%;
  animation: spin 0.8s linear infinite;
}
@keyframes spin { to { transform: rotate(360deg); } }

.prose h2 { margin-top: 1.5rem; }
`
