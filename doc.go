// Package accounts manages personal money accounts and the movements between them.
//
// A [Manager] holds named [Account]s. Recording a [Move] applies an [Expense]
// to the source account and the mirrored [Income] to the destination, so that
// a transfer between two managed accounts keeps both balances consistent.
// Balances are kept in the reference currency, USD: each movement carries its
// amount in its own currency and the exchange rate to USD.
//
// Every entity is written as a typed record:
//
//	kind:name<type>=value:...;
//
// The [RecordCodec] parses and formats records, and the [TypeCodec] converts
// typed values (str, decimal, bool, date with a strftime layout, list). A
// ledger is the concatenation of one chunk per account, its creation record
// followed by its movements, separated by a random separator. [SaveManager]
// encrypts that ledger with a [Cipher] and writes it to a [Store];
// [LoadManager] reads it back.
//
// Ledgers can also be exported to JSON and queried with JSONPath, see [Query].
package accounts
