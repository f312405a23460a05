package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"boletera/internal/domain"
	"boletera/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// adminBackend fakes the protected API. Every handler checks the Bearer
// token and answers 401 when it does not match.
type adminBackend struct {
	mu          sync.Mutex
	token       string
	rutas       []domain.Ruta
	corridas    []domain.Corrida
	manifiesto  []domain.ManifiestoPasajero
	corridaBody map[string]json.RawMessage
	adminCalls  int
}

func (f *adminBackend) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	autorizado := func(w http.ResponseWriter, r *http.Request) bool {
		f.mu.Lock()
		f.adminCalls++
		tok := f.token
		f.mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer "+tok {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "token inválido"})
			return false
		}
		return true
	}

	mux.HandleFunc("/api/admin/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "secreto" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Credenciales inválidas"})
			return
		}
		f.mu.Lock()
		tok := f.token
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": tok})
	})
	mux.HandleFunc("/api/admin/rutas", func(w http.ResponseWriter, r *http.Request) {
		if !autorizado(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		if r.Method == http.MethodPost {
			var ruta domain.Ruta
			_ = json.NewDecoder(r.Body).Decode(&ruta)
			ruta.ID = len(f.rutas) + 1
			f.rutas = append(f.rutas, ruta)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(ruta)
			return
		}
		_ = json.NewEncoder(w).Encode(f.rutas)
	})
	mux.HandleFunc("/api/admin/corridas", func(w http.ResponseWriter, r *http.Request) {
		if !autorizado(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		if r.Method == http.MethodPost {
			_ = json.NewDecoder(r.Body).Decode(&f.corridaBody)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(domain.Corrida{ID: 99})
			return
		}
		_ = json.NewEncoder(w).Encode(f.corridas)
	})
	mux.HandleFunc("/api/admin/corridas/", func(w http.ResponseWriter, r *http.Request) {
		if !autorizado(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		if r.Method == http.MethodPut {
			_ = json.NewDecoder(r.Body).Decode(&f.corridaBody)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})
	mux.HandleFunc("/api/admin/manifiesto/", func(w http.ResponseWriter, r *http.Request) {
		if !autorizado(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{"manifiesto": f.manifiesto})
	})
	mux.HandleFunc("/api/validar-ticket", func(w http.ResponseWriter, r *http.Request) {
		if !autorizado(w, r) {
			return
		}
		_ = json.NewEncoder(w).Encode(domain.ValidacionTicket{
			Status: "valido",
			Pasajeros: []domain.ValidacionPasajero{
				{Asiento: 3, Nombre: "Ana Pérez"},
			},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func (n *navegador) conToken(tok string) *navegador {
	n.cookies[session.TokenCookie] = &http.Cookie{Name: session.TokenCookie, Value: tok}
	return n
}

func TestAdminRequiereLogin(t *testing.T) {
	fake := &adminBackend{token: "tok"}
	n := newNavegador(t, newApp(t, fake.server(t).URL))

	w := n.get("/admin/rutas")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, 0, fake.adminCalls, "no backend call without a token")
}

func TestLoginGuardaTokenYRedirige(t *testing.T) {
	fake := &adminBackend{token: "tok-abc"}
	n := newNavegador(t, newApp(t, fake.server(t).URL))

	w := n.post("/admin/login", url.Values{"telefono": {"5550001111"}, "password": {"secreto"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/rutas", w.Header().Get("Location"))

	ck, ok := n.cookies[session.TokenCookie]
	require.True(t, ok, "login must set the admin token cookie")
	assert.Equal(t, "tok-abc", ck.Value)

	// a logged-in admin bouncing off the login page goes straight to rutas
	w = n.get("/admin/login")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/rutas", w.Header().Get("Location"))
}

func TestLoginConCredencialesMalas(t *testing.T) {
	fake := &adminBackend{token: "tok"}
	n := newNavegador(t, newApp(t, fake.server(t).URL))

	w := n.post("/admin/login", url.Values{"telefono": {"5550001111"}, "password": {"nope"}})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Credenciales inválidas")
	_, ok := n.cookies[session.TokenCookie]
	assert.False(t, ok)
}

func TestBackend401EvictaElToken(t *testing.T) {
	fake := &adminBackend{token: "bueno"}
	n := newNavegador(t, newApp(t, fake.server(t).URL)).conToken("revocado")

	w := n.get("/admin/rutas")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	_, ok := n.cookies[session.TokenCookie]
	assert.False(t, ok, "a 401 from the backend must clear the stored token")

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, 1, fake.adminCalls, "no further admin calls after the 401")
}

func TestLogoutLimpiaElToken(t *testing.T) {
	fake := &adminBackend{token: "tok"}
	n := newNavegador(t, newApp(t, fake.server(t).URL)).conToken("tok")

	w := n.post("/admin/logout", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
	_, ok := n.cookies[session.TokenCookie]
	assert.False(t, ok)
}

func TestCrearRuta(t *testing.T) {
	fake := &adminBackend{token: "tok"}
	n := newNavegador(t, newApp(t, fake.server(t).URL)).conToken("tok")

	w := n.post("/admin/rutas", url.Values{
		"origen": {"Chilpancingo"}, "destino": {"Acapulco"}, "duracion_estimada_min": {"90"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.rutas, 1)
	assert.Equal(t, "Chilpancingo", fake.rutas[0].Origen)
	assert.Equal(t, "Acapulco", fake.rutas[0].Destino)
}

func TestCrearRutaSinOrigen(t *testing.T) {
	fake := &adminBackend{token: "tok"}
	n := newNavegador(t, newApp(t, fake.server(t).URL)).conToken("tok")

	w := n.post("/admin/rutas", url.Values{"origen": {""}, "destino": {"Acapulco"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "obligatorios")

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Empty(t, fake.rutas)
}

func TestCrearCorridaConvierteElFormulario(t *testing.T) {
	fake := &adminBackend{
		token: "tok",
		rutas: []domain.Ruta{{ID: 2, Origen: "Chilpancingo", Destino: "CDMX"}},
	}
	n := newNavegador(t, newApp(t, fake.server(t).URL)).conToken("tok")

	w := n.post("/admin/corridas", url.Values{
		"ruta_id":    {"2"},
		"fecha_hora": {"2025-07-04T08:30"},
		"precio":     {"500.00"},
		"capacidad":  {"19"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	fake.mu.Lock()
	defer fake.mu.Unlock()

	var rutaID, capacidad int
	require.NoError(t, json.Unmarshal(fake.corridaBody["ruta_id"], &rutaID))
	require.NoError(t, json.Unmarshal(fake.corridaBody["capacidad"], &capacidad))
	assert.Equal(t, 2, rutaID)
	assert.Equal(t, 19, capacidad)
	assert.Equal(t, "500", string(fake.corridaBody["precio"]), "precio travels as a JSON number")

	var fechaHora string
	require.NoError(t, json.Unmarshal(fake.corridaBody["fecha_hora"], &fechaHora))
	local, err := time.ParseInLocation("2006-01-02T15:04", "2025-07-04T08:30", time.Local)
	require.NoError(t, err)
	assert.Equal(t, local.UTC().Format(time.RFC3339), fechaHora, "fecha_hora must be RFC3339 in UTC")
}

func TestCrearCorridaInvalida(t *testing.T) {
	fake := &adminBackend{token: "tok"}
	n := newNavegador(t, newApp(t, fake.server(t).URL)).conToken("tok")

	w := n.post("/admin/corridas", url.Values{
		"ruta_id": {"2"}, "fecha_hora": {"no-es-fecha"}, "precio": {"500"}, "capacidad": {"19"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fecha y hora inválidas")

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Nil(t, fake.corridaBody)
}

func TestManifiestoOrdenadoPorAsiento(t *testing.T) {
	fake := &adminBackend{
		token:    "tok",
		corridas: []domain.Corrida{{ID: 7, HoraSalida: "08:30", Capacidad: 19}},
		manifiesto: []domain.ManifiestoPasajero{
			{Asiento: 9, Nombre: "Luis Gómez", ReservaCodigo: "PT-B"},
			{Asiento: 3, Nombre: "Ana Pérez", ReservaCodigo: "PT-A"},
		},
	}
	n := newNavegador(t, newApp(t, fake.server(t).URL)).conToken("tok")

	w := n.get("/admin/manifiesto?corrida_id=7")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	ana := strings.Index(body, "Ana Pérez")
	luis := strings.Index(body, "Luis Gómez")
	require.Positive(t, ana)
	require.Positive(t, luis)
	assert.Less(t, ana, luis, "rows must come out sorted by seat number")
}

func TestValidarTicket(t *testing.T) {
	fake := &adminBackend{token: "tok"}
	n := newNavegador(t, newApp(t, fake.server(t).URL)).conToken("tok")

	w := n.post("/admin/validar", url.Values{"codigo_reserva": {"PT-OK123"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "BOLETO VÁLIDO")
	assert.Contains(t, w.Body.String(), "Ana Pérez")
}
