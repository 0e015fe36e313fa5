// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk data store
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. vault id     = UUID string bytes
// 4. proposal id  = transaction id string bytes from the transaction library
// 5. 0x00         = separator between variable length index components
//
// Vaults:
//
//   V ++ vault id                        - encrypted vault records
//                                          data: JSON {id, blob{nonce, ciphertext}, updatedAt}
//
// Pending proposals:
//
//   P ++ proposal id                     - pending proposal record (plaintext)
//                                          data: JSON {id, vaultId, proposal, createdAt}
//   Q ++ vault id ++ 0x00 ++ proposal id - index of proposals by vault
//                                          data: empty
//
// Transaction history:
//
//   T ++ tx id                           - broadcast transaction record (append only)
//                                          data: JSON {txId, vaultId, timestamp, context}
//   H ++ vault id ++ 0x00 ++ tx id       - index of history by vault
//                                          data: empty
//
// Testing:
//   Z ++ key                             - testing data
package storage
