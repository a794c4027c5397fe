package main

/*
#include "views.h"
*/
import "C"

import "unsafe"

//export HM2016_GetSupportedResourceTypes
func HM2016_GetSupportedResourceTypes() *C.struct_ResourceTypesArray {
	return hm2016.supportedTypes()
}

//export HM2016_FreeSupportedResourceTypes
func HM2016_FreeSupportedResourceTypes(arr *C.struct_ResourceTypesArray) {
	hm2016.freeSupportedTypes(arr)
}

//export HM2016_IsResourceTypeSupported
func HM2016_IsResourceTypeSupported(resourceType *C.char) C.bool {
	return C.bool(hm2016.lib.IsResourceTypeSupported(goString(resourceType)))
}

//export HM2016_ConvertResourceToJson
func HM2016_ConvertResourceToJson(resourceType *C.char, data unsafe.Pointer, size C.size_t) *C.struct_JsonString {
	buf, ok := borrow(data, size)
	if !ok {
		return nil
	}
	return hm2016.convert(goString(resourceType), buf)
}

//export HM2016_GenerateResourceFromJson
func HM2016_GenerateResourceFromJson(resourceType *C.char, json *C.char, jsonSize C.size_t, simple C.bool) *C.struct_ResourceMem {
	doc, ok := borrow(unsafe.Pointer(json), jsonSize)
	if !ok {
		return nil
	}
	return hm2016.generate(goString(resourceType), doc, bool(simple))
}

//export HM2016_FreeJsonString
func HM2016_FreeJsonString(js *C.struct_JsonString) {
	hm2016.freeJSONString(js)
}

//export HM2016_FreeResourceMem
func HM2016_FreeResourceMem(mem *C.struct_ResourceMem) {
	hm2016.freeResourceMem(mem)
}

//export HM2016_GameStructToJson
func HM2016_GameStructToJson(structType *C.char, data unsafe.Pointer, size C.size_t) *C.struct_JsonString {
	buf, ok := borrow(data, size)
	if !ok {
		return nil
	}
	return hm2016.gameStructToJSON(goString(structType), buf)
}

//export HM2016_JsonToGameStruct
func HM2016_JsonToGameStruct(structType *C.char, json *C.char, jsonSize C.size_t, target unsafe.Pointer, targetSize C.size_t) C.bool {
	doc, ok := borrow(unsafe.Pointer(json), jsonSize)
	if !ok {
		return false
	}
	buf, ok := borrow(target, targetSize)
	if !ok {
		return false
	}
	return C.bool(hm2016.jsonToGameStruct(goString(structType), doc, buf))
}

//export HM2016_GetPropertyName
func HM2016_GetPropertyName(id C.uint32_t) C.struct_StringView {
	return hm2016.propertyName(uint32(id))
}
