package services

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	nethttp "net/http"

	"github.com/coocood/freecache"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/zvmtrace/db"
	"github.com/ethpandaops/zvmtrace/dbtypes"
	"github.com/ethpandaops/zvmtrace/types"
	"github.com/ethpandaops/zvmtrace/utils"
)

// SelectorResolverService resolves 4-byte function selectors and 32-byte
// event topic selectors to human readable names. Resolution is best-effort:
// every failure path degrades to a not-found result, never an error for the
// caller. Results are cached in memory and, when the database is enabled,
// persisted across runs.
type SelectorResolverService struct {
	dbEnabled  bool
	localCache *freecache.Cache
}

var GlobalSelectorResolverService *SelectorResolverService
var logger_srs = logrus.StandardLogger().WithField("module", "selector_resolver")

var selectorLookupsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "zvmtrace_selector_lookups_total",
	Help: "Total number of selector lookups by source and result status.",
}, []string{"source", "status"})

type selectorLookup struct {
	Kind      dbtypes.SelectorKind
	Bytes     []byte
	Signature string
	Name      string
	Status    types.SignatureLookupStatus
}

// StartSelectorResolverService is used to start the global selector resolver service
func StartSelectorResolverService(dbEnabled bool) error {
	if GlobalSelectorResolverService != nil {
		return nil
	}

	cacheSize := utils.Config.SignatureLookup.CacheSize
	if cacheSize == 0 {
		cacheSize = 10
	}

	GlobalSelectorResolverService = &SelectorResolverService{
		dbEnabled:  dbEnabled,
		localCache: freecache.NewCache(cacheSize * 1024 * 1024),
	}
	return nil
}

// ResolveFunctionSelector resolves a 4-byte function selector. It returns the
// resolved signature and true, or ("", false) when the selector could not be
// resolved for any reason.
func (srs *SelectorResolverService) ResolveFunctionSelector(selector types.FunctionSelector) (string, bool) {
	lookup := &selectorLookup{
		Kind:  dbtypes.SelectorKindFunction,
		Bytes: selector[:],
	}
	srs.resolveSelector(lookup)
	if lookup.Status != types.SigStatusFound {
		return "", false
	}
	return lookup.Signature, true
}

// ResolveEventSelector resolves a 32-byte event topic selector. It returns
// the resolved signature and true, or ("", false) when the selector could not
// be resolved for any reason.
func (srs *SelectorResolverService) ResolveEventSelector(selector types.EventSelector) (string, bool) {
	lookup := &selectorLookup{
		Kind:  dbtypes.SelectorKindEvent,
		Bytes: selector[:],
	}
	srs.resolveSelector(lookup)
	if lookup.Status != types.SigStatusFound {
		return "", false
	}
	return lookup.Signature, true
}

func (srs *SelectorResolverService) resolveSelector(lookup *selectorLookup) {
	defer utils.HandleSubroutinePanic("SelectorResolverService.resolveSelector")

	if srs.checkLocalCache(lookup) {
		selectorLookupsMetric.WithLabelValues("memory", srs.statusLabel(lookup)).Inc()
		return
	}
	if srs.dbEnabled && srs.checkDatabase(lookup) {
		selectorLookupsMetric.WithLabelValues("db", srs.statusLabel(lookup)).Inc()
		srs.storeLocalCache(lookup)
		return
	}

	if utils.Config.SignatureLookup.DisableNetwork {
		lookup.Status = types.SigStatusUnknown
		return
	}

	srs.lookupUpstream(lookup)
	selectorLookupsMetric.WithLabelValues("upstream", srs.statusLabel(lookup)).Inc()

	if lookup.Status == types.SigStatusPending {
		// all upstreams failed, don't cache anything
		lookup.Status = types.SigStatusUnknown
		return
	}

	srs.storeLocalCache(lookup)
	if srs.dbEnabled {
		srs.storeDatabase(lookup)
	}
}

func (srs *SelectorResolverService) statusLabel(lookup *selectorLookup) string {
	if lookup.Status == types.SigStatusFound {
		return "found"
	}
	return "unknown"
}

func (srs *SelectorResolverService) cacheKey(lookup *selectorLookup) []byte {
	key := make([]byte, len(lookup.Bytes)+1)
	key[0] = byte(lookup.Kind)
	copy(key[1:], lookup.Bytes)
	return key
}

func (srs *SelectorResolverService) checkLocalCache(lookup *selectorLookup) bool {
	value, err := srs.localCache.Get(srs.cacheKey(lookup))
	if err != nil {
		return false
	}
	if len(value) == 0 {
		lookup.Status = types.SigStatusUnknown
		return true
	}
	lookup.Status = types.SigStatusFound
	lookup.Signature = string(value)
	sigparts := strings.Split(lookup.Signature, "(")
	lookup.Name = sigparts[0]
	return true
}

func (srs *SelectorResolverService) storeLocalCache(lookup *selectorLookup) {
	expiry := 0
	value := []byte(lookup.Signature)
	if lookup.Status == types.SigStatusUnknown {
		value = []byte{}
		recheckTime := utils.Config.SignatureLookup.RecheckTimeout
		if recheckTime == 0 {
			recheckTime = 24 * time.Hour
		}
		expiry = int(recheckTime.Seconds())
	}
	err := srs.localCache.Set(srs.cacheKey(lookup), value, expiry)
	if err != nil {
		logger_srs.Debugf("error caching selector 0x%x: %v", lookup.Bytes, err)
	}
}

func (srs *SelectorResolverService) checkDatabase(lookup *selectorLookup) bool {
	switch lookup.Kind {
	case dbtypes.SelectorKindFunction:
		for _, dbSigEntry := range db.GetFunctionSignaturesByBytes([][]byte{lookup.Bytes}) {
			lookup.Status = types.SigStatusFound
			lookup.Signature = dbSigEntry.Signature
			lookup.Name = dbSigEntry.Name
			return true
		}
	case dbtypes.SelectorKindEvent:
		for _, dbSigEntry := range db.GetEventSignaturesByBytes([][]byte{lookup.Bytes}) {
			lookup.Status = types.SigStatusFound
			lookup.Signature = dbSigEntry.Signature
			lookup.Name = dbSigEntry.Name
			return true
		}
	}

	// check negative cache (previously failed lookups)
	recheckTime := int64(utils.Config.SignatureLookup.RecheckTimeout.Seconds())
	if recheckTime == 0 {
		recheckTime = 86400
	}
	checkTimeout := time.Now().Unix() - recheckTime

	for _, unknownSigEntry := range db.GetUnknownSignatures([][]byte{lookup.Bytes}, lookup.Kind) {
		if unknownSigEntry.LastCheck < uint64(checkTimeout) {
			continue
		}
		lookup.Status = types.SigStatusUnknown
		return true
	}

	return false
}

func (srs *SelectorResolverService) storeDatabase(lookup *selectorLookup) {
	err := db.RunDBTransaction(func(tx *sqlx.Tx) error {
		if lookup.Status == types.SigStatusUnknown {
			return db.InsertUnknownSignature(&dbtypes.UnknownSignature{
				Bytes:     lookup.Bytes,
				Kind:      lookup.Kind,
				LastCheck: uint64(time.Now().Unix()),
			}, tx)
		}

		err := db.DeleteUnknownSignature(lookup.Bytes, lookup.Kind, tx)
		if err != nil {
			logger_srs.Warnf("error deleting unknown signature: %v", err)
		}

		if lookup.Kind == dbtypes.SelectorKindFunction {
			return db.InsertFunctionSignature(&dbtypes.FunctionSignature{
				Bytes:     lookup.Bytes,
				Signature: lookup.Signature,
				Name:      lookup.Name,
			}, tx)
		}
		return db.InsertEventSignature(&dbtypes.EventSignature{
			Bytes:     lookup.Bytes,
			Signature: lookup.Signature,
			Name:      lookup.Name,
		}, tx)
	})
	if err != nil {
		logger_srs.Warnf("error saving signature lookup: %v", err)
	}
}

func (srs *SelectorResolverService) lookupUpstream(lookup *selectorLookup) {
	var lastErr error

	// Priority 1: Sourcify signature database
	if !utils.Config.SignatureLookup.DisableSourcify {
		err := srs.lookupSourcify(lookup)
		if err != nil {
			logger_srs.Debugf("sourcify lookup for 0x%x failed: %v", lookup.Bytes, err)
			lastErr = err
		} else if lookup.Status == types.SigStatusFound {
			return
		}
	}

	// Priority 2: 4bytes
	if !utils.Config.SignatureLookup.Disable4Bytes {
		err := srs.lookup4Bytes(lookup)
		if err != nil {
			logger_srs.Debugf("4bytes lookup for 0x%x failed: %v", lookup.Bytes, err)
			lastErr = err
		} else if lookup.Status == types.SigStatusFound {
			return
		}
	}

	if lastErr != nil && lookup.Status == types.SigStatusPending {
		logger_srs.Debugf("all upstream lookups for 0x%x failed: %v", lookup.Bytes, lastErr)
	}
}

func (srs *SelectorResolverService) httpClient() *nethttp.Client {
	timeout := utils.Config.SignatureLookup.RequestTimeout
	if timeout == 0 {
		timeout = time.Second * 10
	}
	return &nethttp.Client{Timeout: timeout}
}

// lookupSourcify looks up a selector via the Sourcify signature database.
func (srs *SelectorResolverService) lookupSourcify(lookup *selectorLookup) error {
	baseUrl := utils.Config.SignatureLookup.SourcifyBaseUrl
	if baseUrl == "" {
		baseUrl = "https://api.4byte.sourcify.dev/signature-database/v1/lookup"
	}

	hex := fmt.Sprintf("0x%x", lookup.Bytes)
	field := "function"
	if lookup.Kind == dbtypes.SelectorKindEvent {
		field = "event"
	}
	url := fmt.Sprintf("%s?%s=%s&filter=true", baseUrl, field, hex)

	req, err := nethttp.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}

	resp, err := srs.httpClient().Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("url: %v, code: %v, error-response: %s", url, resp.StatusCode, data)
	}

	var returnValue struct {
		Ok     bool `json:"ok"`
		Result struct {
			Function map[string][]sourcifySigResult `json:"function"`
			Event    map[string][]sourcifySigResult `json:"event"`
		} `json:"result"`
	}

	dec := json.NewDecoder(resp.Body)
	if err = dec.Decode(&returnValue); err != nil {
		return fmt.Errorf("error parsing sourcify json response: %w", err)
	}

	if !returnValue.Ok {
		return fmt.Errorf("sourcify api returned error")
	}

	results := returnValue.Result.Function[hex]
	if lookup.Kind == dbtypes.SelectorKindEvent {
		results = returnValue.Result.Event[hex]
	}
	if len(results) == 0 {
		lookup.Status = types.SigStatusUnknown
	} else {
		// prefer results from verified contracts
		best := results[0]
		for _, r := range results {
			if r.HasVerifiedContract && !r.Filtered {
				best = r
				break
			}
		}

		lookup.Status = types.SigStatusFound
		lookup.Signature = best.Name
		sigparts := strings.Split(lookup.Signature, "(")
		lookup.Name = sigparts[0]
	}

	return nil
}

type sourcifySigResult struct {
	Name                string `json:"name"`
	Filtered            bool   `json:"filtered"`
	HasVerifiedContract bool   `json:"hasVerifiedContract"`
}

type sigLookup_4bytesResponse struct {
	Count   int `json:"count"`
	Results []struct {
		Id        int    `json:"id"`
		Signature string `json:"text_signature"`
	} `json:"results"`
}

func (srs *SelectorResolverService) lookup4Bytes(lookup *selectorLookup) error {
	// lookup signature via https://www.4byte.directory/
	endpoint := "signatures"
	if lookup.Kind == dbtypes.SelectorKindEvent {
		endpoint = "event-signatures"
	}
	url := fmt.Sprintf("https://www.4byte.directory/api/v1/%s/?format=json&hex_signature=0x%x", endpoint, lookup.Bytes)

	req, err := nethttp.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}
	resp, err := srs.httpClient().Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("url: %v, code: %v, error-response: %s", url, resp.StatusCode, data)
	}

	returnValue := sigLookup_4bytesResponse{}
	dec := json.NewDecoder(resp.Body)
	err = dec.Decode(&returnValue)
	if err != nil {
		return fmt.Errorf("error parsing 4bytes json response: %v", err)
	}

	if returnValue.Count == 0 {
		lookup.Status = types.SigStatusUnknown
	} else {
		lookup.Status = types.SigStatusFound
		lookup.Signature = returnValue.Results[0].Signature
		sigparts := strings.Split(lookup.Signature, "(")
		lookup.Name = sigparts[0]
	}
	return nil
}
