package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"text_trans_api/config"
	"text_trans_api/models/models"
	"text_trans_api/pkg/httpclient"
	"text_trans_api/pkg/logger"
	responsex "text_trans_api/pkg/response"
	"text_trans_api/pkg/users"
	middlewareauth "text_trans_api/service/api/middleware/auth"
)

// Signup handles POST /api/auth/signup. One signup per IP: the check
// is a read against user_signups followed by the account creation and
// a row insert, with no transaction between them.
func Signup(w http.ResponseWriter, r *http.Request) {
	var requestData models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Invalid request format. Please check your request body.",
			Data: map[string]interface{}{},
		})
		return
	}

	if requestData.Email == "" || requestData.Password == "" {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Email and password are required.",
			Data: map[string]interface{}{},
		})
		return
	}

	ip := requestData.Ip
	if ip == "" {
		ip = middlewareauth.ClientIP(r)
	}

	signups, err := users.GetSignupsByIP(r.Context(), ip)
	if err != nil {
		logger.Logger.Error("failed to check signups", "ip", ip, "error", err.Error())
		responsex.RespondWithJSON(w, http.StatusInternalServerError, models.Response{
			Code: http.StatusInternalServerError,
			Msg:  "Internal server error. Please try again later.",
			Data: map[string]interface{}{},
		})
		return
	}

	if len(signups) > 0 {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "An account has already been created from this address.",
			Data: map[string]interface{}{},
		})
		return
	}

	if err := createAccount(r, requestData.Email, requestData.Password); err != nil {
		logger.Logger.Error("signup failed", "error", err.Error())
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  err.Error(),
			Data: map[string]interface{}{},
		})
		return
	}

	if err := users.AddSignup(r.Context(), requestData.Email, ip); err != nil {
		// The account exists at this point; a missing ledger row only
		// weakens the one-per-IP rule, so log and continue.
		logger.Logger.Error("failed to record signup", "ip", ip, "error", err.Error())
	}

	responsex.RespondWithJSON(w, http.StatusOK, models.Response{
		Code: http.StatusOK,
		Msg:  "Account created. Please check your email to confirm your address.",
		Data: map[string]interface{}{},
	})
}

func createAccount(r *http.Request, email string, password string) error {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}

	signupURL := fmt.Sprintf("%s/auth/v1/signup", config.Cfg.Supabase.SupabaseUrl)
	req, err := http.NewRequestWithContext(r.Context(), "POST", signupURL, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("apikey", config.Cfg.Supabase.SupabaseApiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpclient.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		var apiError struct {
			Msg      string `json:"msg"`
			ErrorMsg string `json:"error_description"`
		}
		_ = json.Unmarshal(bodyBytes, &apiError)
		if apiError.Msg != "" {
			return fmt.Errorf("%s", apiError.Msg)
		}
		if apiError.ErrorMsg != "" {
			return fmt.Errorf("%s", apiError.ErrorMsg)
		}
		return fmt.Errorf("signup failed: %s", resp.Status)
	}

	return nil
}

// Callback handles GET /auth/callback. The auth provider redirects
// here with either a code to exchange for a session or an error;
// either way the browser ends up back on the app.
func Callback(w http.ResponseWriter, r *http.Request) {
	frontend := config.Cfg.Frontend.BaseUrl

	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		http.Redirect(w, r, frontend+"/?error="+url.QueryEscape(errMsg), http.StatusFound)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, frontend+"/?error="+url.QueryEscape("missing code"), http.StatusFound)
		return
	}

	session, err := exchangeCode(r, code)
	if err != nil {
		logger.Logger.Error("code exchange failed", "error", err.Error())
		http.Redirect(w, r, frontend+"/?error="+url.QueryEscape("authentication failed"), http.StatusFound)
		return
	}

	// Session tokens travel in the fragment so they never hit the
	// frontend's server logs.
	target := fmt.Sprintf("%s/#access_token=%s&refresh_token=%s",
		frontend, url.QueryEscape(session.AccessToken), url.QueryEscape(session.RefreshToken))
	http.Redirect(w, r, target, http.StatusFound)
}

type session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func exchangeCode(r *http.Request, code string) (*session, error) {
	payload, err := json.Marshal(map[string]string{"auth_code": code})
	if err != nil {
		return nil, err
	}

	tokenURL := fmt.Sprintf("%s/auth/v1/token?grant_type=pkce", config.Cfg.Supabase.SupabaseUrl)
	req, err := http.NewRequestWithContext(r.Context(), "POST", tokenURL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", config.Cfg.Supabase.SupabaseApiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpclient.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token exchange failed: %s, %s", resp.Status, string(bodyBytes))
	}

	var s session
	if err := json.Unmarshal(bodyBytes, &s); err != nil {
		return nil, err
	}

	return &s, nil
}
