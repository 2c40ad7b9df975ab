package db

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ethpandaops/zvmtrace/dbtypes"
)

func GetFunctionSignaturesByBytes(sigBytes [][]byte) []*dbtypes.FunctionSignature {
	fnSigs := []*dbtypes.FunctionSignature{}
	if len(sigBytes) == 0 {
		return fnSigs
	}

	var sql strings.Builder
	fmt.Fprintf(&sql, `
	SELECT
		signature, bytes, name
	FROM function_signatures
	WHERE bytes IN (`)
	args := make([]any, len(sigBytes))
	for i := range sigBytes {
		if i > 0 {
			fmt.Fprintf(&sql, ", ")
		}
		fmt.Fprintf(&sql, "$%v", i+1)
		args[i] = sigBytes[i]
	}
	fmt.Fprintf(&sql, ")")

	err := ReaderDb.Select(&fnSigs, sql.String(), args...)
	if err != nil {
		logger.Errorf("error while fetching function signatures: %v", err)
		return nil
	}
	return fnSigs
}

func InsertFunctionSignature(fnSig *dbtypes.FunctionSignature, tx *sqlx.Tx) error {
	_, err := tx.Exec(EngineQuery(map[dbtypes.DBEngineType]string{
		dbtypes.DBEnginePgsql: `
			INSERT INTO function_signatures (
				signature, bytes, name
			) VALUES ($1, $2, $3)
			ON CONFLICT (bytes) DO NOTHING`,
		dbtypes.DBEngineSqlite: `
			INSERT OR IGNORE INTO function_signatures (
				signature, bytes, name
			) VALUES ($1, $2, $3)`,
	}),
		fnSig.Signature, fnSig.Bytes, fnSig.Name)
	if err != nil {
		return err
	}
	return nil
}

func GetEventSignaturesByBytes(sigBytes [][]byte) []*dbtypes.EventSignature {
	evSigs := []*dbtypes.EventSignature{}
	if len(sigBytes) == 0 {
		return evSigs
	}

	var sql strings.Builder
	fmt.Fprintf(&sql, `
	SELECT
		signature, bytes, name
	FROM event_signatures
	WHERE bytes IN (`)
	args := make([]any, len(sigBytes))
	for i := range sigBytes {
		if i > 0 {
			fmt.Fprintf(&sql, ", ")
		}
		fmt.Fprintf(&sql, "$%v", i+1)
		args[i] = sigBytes[i]
	}
	fmt.Fprintf(&sql, ")")

	err := ReaderDb.Select(&evSigs, sql.String(), args...)
	if err != nil {
		logger.Errorf("error while fetching event signatures: %v", err)
		return nil
	}
	return evSigs
}

func InsertEventSignature(evSig *dbtypes.EventSignature, tx *sqlx.Tx) error {
	_, err := tx.Exec(EngineQuery(map[dbtypes.DBEngineType]string{
		dbtypes.DBEnginePgsql: `
			INSERT INTO event_signatures (
				signature, bytes, name
			) VALUES ($1, $2, $3)
			ON CONFLICT (bytes) DO NOTHING`,
		dbtypes.DBEngineSqlite: `
			INSERT OR IGNORE INTO event_signatures (
				signature, bytes, name
			) VALUES ($1, $2, $3)`,
	}),
		evSig.Signature, evSig.Bytes, evSig.Name)
	if err != nil {
		return err
	}
	return nil
}

func GetUnknownSignatures(sigBytes [][]byte, kind dbtypes.SelectorKind) []*dbtypes.UnknownSignature {
	unknownSigs := []*dbtypes.UnknownSignature{}
	if len(sigBytes) == 0 {
		return unknownSigs
	}

	var sql strings.Builder
	fmt.Fprintf(&sql, `
	SELECT
		bytes, kind, lastcheck
	FROM unknown_signatures
	WHERE kind = $1 AND bytes IN (`)
	args := make([]any, len(sigBytes)+1)
	args[0] = kind
	for i := range sigBytes {
		if i > 0 {
			fmt.Fprintf(&sql, ", ")
		}
		fmt.Fprintf(&sql, "$%v", i+2)
		args[i+1] = sigBytes[i]
	}
	fmt.Fprintf(&sql, ")")

	err := ReaderDb.Select(&unknownSigs, sql.String(), args...)
	if err != nil {
		logger.Errorf("error while fetching unknown signatures: %v", err)
		return nil
	}
	return unknownSigs
}

func InsertUnknownSignature(unknownSig *dbtypes.UnknownSignature, tx *sqlx.Tx) error {
	_, err := tx.Exec(EngineQuery(map[dbtypes.DBEngineType]string{
		dbtypes.DBEnginePgsql: `
			INSERT INTO unknown_signatures (
				bytes, kind, lastcheck
			) VALUES ($1, $2, $3)
			ON CONFLICT (bytes, kind) DO UPDATE SET lastcheck = excluded.lastcheck`,
		dbtypes.DBEngineSqlite: `
			INSERT OR REPLACE INTO unknown_signatures (
				bytes, kind, lastcheck
			) VALUES ($1, $2, $3)`,
	}),
		unknownSig.Bytes, unknownSig.Kind, unknownSig.LastCheck)
	if err != nil {
		return err
	}
	return nil
}

func DeleteUnknownSignature(sigBytes []byte, kind dbtypes.SelectorKind, tx *sqlx.Tx) error {
	_, err := tx.Exec(`DELETE FROM unknown_signatures WHERE bytes = $1 AND kind = $2`, sigBytes, kind)
	return err
}
