// Package itemstore persists the "items to bring" list and the extra guests
// per collaborator as a single JSON document.
//
// # Document
//
// The whole document is the unit of persistence. Every operation reads the
// file completely, applies its change in memory and rewrites the whole file:
//
//	{
//	  "items": [
//	    {"collaborator_id": "7", "collaborator_name": "Ana", "item": "Carvão",
//	     "quantity": 2, "unit": "saco 5kg", "observacoes": ""}
//	  ],
//	  "pessoas_extras": {"7": 1}
//	}
//
// Files written by the earlier dashboard (keys "itens", "colaborador_id",
// "nome_colaborador", "quantidade", "unidade" and numeric ids) are read
// transparently and rewritten with the keys above on the next mutation.
//
// # Durability
//
// Writes go through atomicfile: the serialized document is staged in a
// temporary file next to the backing file and renamed over it. A reader sees
// the old or the new document, never a partial one. A crash between the two
// steps leaves the backing file untouched and may orphan the temporary file;
// the store does not clean those up.
//
// # Failure modes
//
//   - A backing file that exists but does not parse yields *CorruptDataError.
//     The store never repairs or replaces it with an empty document.
//   - UpdateItem and DeleteItem on an invalid position yield
//     *IndexOutOfRangeError and leave the file unchanged.
//   - I/O errors are returned wrapped; nothing is retried.
//
// # Concurrency
//
// A Store serializes its own operations with a mutex. There is no locking
// across processes: two processes writing the same file race at the rename and
// the last writer wins.
package itemstore
